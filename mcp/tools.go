package mcp

// Tools returns the five WebFetch tool definitions.
func Tools() []Tool {
	return []Tool{
		{
			Name:        "fetch_webpage",
			Description: "Fetch and extract content from a webpage with smart content extraction",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{
						"type":        "string",
						"description": "The URL to fetch content from",
					},
					"extract_content": map[string]any{
						"type":        "boolean",
						"description": "Whether to extract main content using intelligent parsing (default: true)",
						"default":     true,
					},
					"include_metadata": map[string]any{
						"type":        "boolean",
						"description": "Whether to include page metadata (title, description, etc.)",
						"default":     true,
					},
					"timeout": map[string]any{
						"type":        "number",
						"description": "Request timeout in seconds (default: 30)",
						"default":     30,
					},
					"format": map[string]any{
						"type":        "string",
						"description": "Content format: 'text' (default) or 'markdown'",
						"enum":        []string{"text", "markdown"},
					},
				},
				"required": []string{"url"},
			},
		},
		{
			Name:        "fetch_multiple_pages",
			Description: "Fetch content from multiple webpages in parallel",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"urls": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "List of URLs to fetch",
					},
					"extract_content": map[string]any{
						"type":        "boolean",
						"description": "Whether to extract main content (default: true)",
						"default":     true,
					},
					"include_metadata": map[string]any{
						"type":        "boolean",
						"description": "Whether to include page metadata",
						"default":     true,
					},
					"max_concurrent": map[string]any{
						"type":        "number",
						"description": "Maximum concurrent requests (default: 5)",
						"default":     5,
					},
					"timeout": map[string]any{
						"type":        "number",
						"description": "Request timeout in seconds (default: 30)",
						"default":     30,
					},
				},
				"required": []string{"urls"},
			},
		},
		{
			Name:        "search_webpage_content",
			Description: "Fetch a webpage and search for specific content or patterns",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{
						"type":        "string",
						"description": "The URL to fetch and search",
					},
					"search_terms": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Terms to search for in the content",
					},
					"case_sensitive": map[string]any{
						"type":        "boolean",
						"description": "Whether search should be case sensitive (default: false)",
						"default":     false,
					},
					"context_chars": map[string]any{
						"type":        "number",
						"description": "Number of characters to include around matches (default: 200)",
						"default":     200,
					},
				},
				"required": []string{"url", "search_terms"},
			},
		},
		{
			Name:        "extract_links",
			Description: "Extract all links from a webpage with optional filtering",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{
						"type":        "string",
						"description": "The URL to extract links from",
					},
					"filter_internal": map[string]any{
						"type":        "boolean",
						"description": "Only return internal links (same domain)",
						"default":     false,
					},
					"filter_external": map[string]any{
						"type":        "boolean",
						"description": "Only return external links (different domain)",
						"default":     false,
					},
					"include_anchors": map[string]any{
						"type":        "boolean",
						"description": "Include anchor links (#fragments)",
						"default":     false,
					},
				},
				"required": []string{"url"},
			},
		},
		{
			Name:        "get_page_metadata",
			Description: "Extract detailed metadata from a webpage (title, description, Open Graph, etc.)",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url": map[string]any{
						"type":        "string",
						"description": "The URL to extract metadata from",
					},
				},
				"required": []string{"url"},
			},
		},
	}
}
