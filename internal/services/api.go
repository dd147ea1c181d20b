package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
)

const defaultBaseURL = "http://127.0.0.1:3000"

// APIService is a client for the setlist HTTP API used by the CLI and the reorder TUI.
type APIService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIService creates a new API client for the server at baseURL.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// APIError is a non-2xx response from the server.
//
// It unwraps to the taxonomy error matching its status code, so callers can use [errors.Is]
// with [shared.ErrNotFound] and friends on either side of the wire.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return shared.ErrNotFound
	case http.StatusConflict:
		return shared.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return shared.ErrInvalidArgument
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return shared.ErrServiceUnavailable
	default:
		return shared.ErrInternal
	}
}

type reorderRequest struct {
	Members []models.PositionUpdate `json:"members"`
}

type addMemberRequest struct {
	ItemID int64 `json:"itemId"`
}

// Members fetches a setlist's songs in order.
func (a *APIService) Members(ctx context.Context, setlistID int64) ([]models.SetlistSong, error) {
	var songs []models.SetlistSong
	if err := a.do(ctx, http.MethodGet, membersPath(setlistID), nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// AddMember appends a song to a setlist.
func (a *APIService) AddMember(ctx context.Context, setlistID, songID int64) (*models.SetlistSong, error) {
	var song models.SetlistSong
	if err := a.do(ctx, http.MethodPost, membersPath(setlistID), addMemberRequest{ItemID: songID}, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// RemoveMember removes a song from a setlist.
func (a *APIService) RemoveMember(ctx context.Context, setlistID, songID int64) error {
	path := membersPath(setlistID) + "/" + strconv.FormatInt(songID, 10)
	return a.do(ctx, http.MethodDelete, path, nil, nil)
}

// Reorder submits a complete ordering for a setlist and returns the server's resulting order.
func (a *APIService) Reorder(ctx context.Context, setlistID int64, ordering models.Ordering) ([]models.SetlistSong, error) {
	var songs []models.SetlistSong
	body := reorderRequest{Members: ordering.Positions()}
	if err := a.do(ctx, http.MethodPut, membersPath(setlistID)+"/reorder", body, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Setlist fetches one setlist.
func (a *APIService) Setlist(ctx context.Context, setlistID int64) (*models.Setlist, error) {
	var setlist models.Setlist
	if err := a.do(ctx, http.MethodGet, "/collections/"+strconv.FormatInt(setlistID, 10), nil, &setlist); err != nil {
		return nil, err
	}
	return &setlist, nil
}

// Setlists fetches every setlist, newest first.
func (a *APIService) Setlists(ctx context.Context) ([]*models.Setlist, error) {
	var setlists []*models.Setlist
	if err := a.do(ctx, http.MethodGet, "/collections", nil, &setlists); err != nil {
		return nil, err
	}
	return setlists, nil
}

func membersPath(setlistID int64) string {
	return "/collections/" + strconv.FormatInt(setlistID, 10) + "/members"
}

// do sends a JSON request and decodes a JSON response into out. A nil out discards the body.
func (a *APIService) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %w", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(status)
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &APIError{StatusCode: status, Message: msg}
}

// IsAPIStatus reports whether err is an [APIError] with the given status code.
func IsAPIStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
