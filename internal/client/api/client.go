package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gomoku/internal/client/display"
	"gomoku/internal/core"
)

// Client talks to the gomoku server and echoes every exchange to Out
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Verbose    bool
	Out        io.Writer
}

// APIError is returned for non-2xx responses
type APIError struct {
	Status   int
	Response core.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Response.Code != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Response.Code)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// Long-poll requests hold the connection for up to 25s
			Timeout: 35 * time.Second,
		},
		Out: os.Stdout,
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(url string) {
	c.BaseURL = strings.TrimRight(url, "/")
}

func (c *Client) doRequest(method, path string, body interface{}, result interface{}) error {
	url := c.BaseURL + path

	var bodyReader io.Reader
	var bodyStr string
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
		bodyStr = string(jsonData)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	fmt.Fprintf(c.Out, "\n%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
	if bodyStr != "" {
		if c.Verbose {
			fmt.Fprintf(c.Out, "%sRequest Body:%s\n%s\n", display.Cyan, display.Reset, display.PrettyBytes([]byte(bodyStr)))
		} else {
			fmt.Fprintf(c.Out, "%s%s%s\n", display.Blue, bodyStr, display.Reset)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		fmt.Fprintf(c.Out, "%s[ERROR] %s%s\n", display.Red, err.Error(), display.Reset)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	statusColor := display.Green
	if resp.StatusCode >= 400 {
		statusColor = display.Red
	}
	fmt.Fprintf(c.Out, "%s[%d %s]%s\n", statusColor, resp.StatusCode, http.StatusText(resp.StatusCode), display.Reset)

	if c.Verbose && len(respBody) > 0 {
		fmt.Fprintf(c.Out, "%sResponse Body:%s\n%s\n", display.Cyan, display.Reset, display.PrettyBytes(respBody))
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, &apiErr.Response); err == nil {
			if !c.Verbose {
				fmt.Fprintf(c.Out, "%sError: %s%s\n", display.Red, apiErr.Response.Error, display.Reset)
				if apiErr.Response.Code != "" {
					fmt.Fprintf(c.Out, "%sCode: %s%s\n", display.Red, apiErr.Response.Code, display.Reset)
				}
				if apiErr.Response.Details != "" {
					fmt.Fprintf(c.Out, "%sDetails: %s%s\n", display.Red, apiErr.Response.Details, display.Reset)
				}
			}
		} else if !c.Verbose {
			fmt.Fprintf(c.Out, "%s%s%s\n", display.Red, string(respBody), display.Reset)
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			fmt.Fprintf(c.Out, "%sResponse parse error: %s%s\n", display.Red, err.Error(), display.Reset)
			fmt.Fprintf(c.Out, "%sRaw response: %s%s\n", display.Green, string(respBody), display.Reset)
			return err
		}
	}

	return nil
}

func gamePath(gameID string) string {
	return "/api/v1/games/" + gameID
}

// API Methods

func (c *Client) Health() (*core.HealthResponse, error) {
	var resp core.HealthResponse
	err := c.doRequest("GET", "/health", nil, &resp)
	return &resp, err
}

func (c *Client) CreateGame(req *core.CreateGameRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games", req, &resp)
	return &resp, err
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("GET", gamePath(gameID), nil, &resp)
	return &resp, err
}

// GetGameWithPoll blocks until the game version differs from version or the server times out
func (c *Client) GetGameWithPoll(gameID string, version int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := fmt.Sprintf("%s?wait=true&version=%d", gamePath(gameID), version)
	err := c.doRequest("GET", path, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest("DELETE", gamePath(gameID), nil, nil)
}

func (c *Client) PlayIndex(gameID string, index int) (*core.GameResponse, error) {
	return c.playMove(gameID, &core.MoveRequest{Index: &index})
}

func (c *Client) PlayCell(gameID string, cell string) (*core.GameResponse, error) {
	return c.playMove(gameID, &core.MoveRequest{Cell: cell})
}

func (c *Client) playMove(gameID string, req *core.MoveRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", gamePath(gameID)+"/moves", req, &resp)
	return &resp, err
}

func (c *Client) JumpTo(gameID string, position int) (*core.GameResponse, error) {
	req := &core.JumpRequest{Position: &position}
	var resp core.GameResponse
	err := c.doRequest("POST", gamePath(gameID)+"/jump", req, &resp)
	return &resp, err
}

func (c *Client) Restart(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", gamePath(gameID)+"/restart", nil, &resp)
	return &resp, err
}

func (c *Client) GetBoard(gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	err := c.doRequest("GET", gamePath(gameID)+"/board", nil, &resp)
	return &resp, err
}

func (c *Client) GetHistory(gameID string) (*core.HistoryResponse, error) {
	var resp core.HistoryResponse
	err := c.doRequest("GET", gamePath(gameID)+"/history", nil, &resp)
	return &resp, err
}

// RawRequest performs a raw HTTP request for debugging purposes
func (c *Client) RawRequest(method, path string, body string) error {
	var bodyData interface{}
	if body != "" {
		if err := json.Unmarshal([]byte(body), &bodyData); err != nil {
			bodyData = body
		}
	}

	return c.doRequest(method, path, bodyData, nil)
}
