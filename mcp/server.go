package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/webfetch/core"
	"github.com/gaurav-prasanna/webfetch/service"
)

const (
	serverName      = "webfetch-mcp"
	serverVersion   = "1.0.0"
	protocolVersion = "2024-11-05"
)

// Server dispatches MCP requests to the WebFetch service.
type Server struct {
	svc *service.Service
	log *zap.Logger
}

// NewServer creates an MCP server over the given service.
func NewServer(svc *service.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log}
}

// maxLineBytes caps a single request line.
const maxLineBytes = 10 * 1024 * 1024

// Serve reads line-delimited JSON-RPC requests from r and writes
// responses to w until EOF or context cancellation. Notifications
// (requests without ID) receive no response. A line that fails to
// parse gets one ParseError response with a null id; the next line
// starts a fresh parse, so one bad line never wedges the session.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	encoder := json.NewEncoder(w) // compact JSON, one response per line

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn("unparseable request", zap.Error(err))
			resp := &Response{
				JSONRPC: "2.0",
				ID:      nil,
				Error:   &ErrorObject{Code: ParseError, Message: "failed to parse request"},
			}
			if encErr := encoder.Encode(resp); encErr != nil {
				return fmt.Errorf("encoding error response: %w", encErr)
			}
			continue
		}

		resp := s.HandleRequest(ctx, &req)
		if resp == nil || req.ID == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}

// HandleRequest processes one request. Returns nil for notifications
// of unknown methods, which require no response.
func (s *Server) HandleRequest(ctx context.Context, req *Request) *Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.ID)
	case "tools/list":
		return s.handleToolsList(req.ID)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &Response{JSONRPC: "2.0", ID: req.ID, Result: json.RawMessage(`"pong"`)}
	}

	if req.ID == nil {
		return nil
	}
	return errorResponse(req.ID, MethodNotFound, "method not found: "+req.Method)
}

func (s *Server) handleInitialize(id any) *Response {
	return resultResponse(id, map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    serverName,
			"version": serverVersion,
		},
	})
}

func (s *Server) handleToolsList(id any) *Response {
	return resultResponse(id, map[string]any{"tools": Tools()})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, InvalidParams, "invalid parameters")
	}

	s.log.Debug("tool call", zap.String("tool", params.Name))

	result, err := s.callTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return errorResponse(req.ID, InvalidParams, err.Error())
	}
	if result == nil {
		return errorResponse(req.ID, InvalidParams, "unknown tool: "+params.Name)
	}

	return toolResponse(req.ID, result)
}

// callTool dispatches to the service operation. A nil, nil return
// means the tool name is unknown; an error means invalid arguments.
// Per-URL failures come back inside the result value, not as errors.
func (s *Server) callTool(ctx context.Context, name string, args json.RawMessage) (any, error) {
	switch name {
	case "fetch_webpage":
		var req core.FetchPageRequest
		if err := unmarshalArgs(args, &req); err != nil {
			return nil, err
		}
		return returnAny(s.svc.FetchWebpage(ctx, req))

	case "fetch_multiple_pages":
		var req core.FetchPagesRequest
		if err := unmarshalArgs(args, &req); err != nil {
			return nil, err
		}
		return returnAny(s.svc.FetchMultiplePages(ctx, req))

	case "search_webpage_content":
		var req core.SearchRequest
		if err := unmarshalArgs(args, &req); err != nil {
			return nil, err
		}
		return returnAny(s.svc.SearchWebpageContent(ctx, req))

	case "extract_links":
		var req core.LinksRequest
		if err := unmarshalArgs(args, &req); err != nil {
			return nil, err
		}
		return returnAny(s.svc.ExtractLinks(ctx, req))

	case "get_page_metadata":
		var req core.MetadataRequest
		if err := unmarshalArgs(args, &req); err != nil {
			return nil, err
		}
		return returnAny(s.svc.GetPageMetadata(ctx, req))
	}

	return nil, nil
}

func unmarshalArgs(args json.RawMessage, dst any) error {
	if len(args) == 0 {
		return fmt.Errorf("missing arguments")
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func returnAny[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// toolResponse wraps an operation result in the MCP content envelope:
// the result is serialized as indented JSON inside a text content
// block.
func toolResponse(id any, result any) *Response {
	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errorResponse(id, InternalError, fmt.Sprintf("marshaling result: %v", err))
	}
	return resultResponse(id, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": string(text)},
		},
		"isError": false,
	})
}

func resultResponse(id any, result any) *Response {
	raw, err := json.Marshal(result)
	if err != nil {
		return errorResponse(id, InternalError, fmt.Sprintf("marshaling result: %v", err))
	}
	return &Response{JSONRPC: "2.0", ID: id, Result: raw}
}

func errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &ErrorObject{Code: code, Message: message},
	}
}
