package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iho/restledger/internal/adapter/http/dto"
	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

// apiError is a non-2xx answer from the API.
type apiError struct {
	Status int
	Body   dto.ErrorResponse
	Raw    []byte
}

func (e *apiError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Body.Error, e.Body.Message)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Body.Error)
}

// client talks to the restledger HTTP API.
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *client) do(ctx context.Context, method, path string, query url.Values, body any, header http.Header) (*http.Response, error) {
	u := c.baseURL + "/api/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &apiError{Status: resp.StatusCode, Raw: raw}
		if err := json.Unmarshal(raw, &apiErr.Body); err != nil || apiErr.Body.Error == "" {
			apiErr.Body.Error = strings.TrimSpace(string(raw))
		}
		return nil, apiErr
	}

	return resp, nil
}

func (c *client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

// download streams a GET response body into w.
func (c *client) download(ctx context.Context, path string, query url.Values, w io.Writer) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *client) postJSON(ctx context.Context, path string, body, out any, header http.Header) error {
	resp, err := c.do(ctx, http.MethodPost, path, nil, body, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

// consistency fetches the ledger check. An inconsistent ledger is answered
// with 409 and a full report, which is decoded rather than treated as a
// failed request.
func (c *client) consistency(ctx context.Context) (*dto.ConsistencyResponse, error) {
	var out dto.ConsistencyResponse
	err := c.getJSON(ctx, "/ledger/consistency", nil, &out)

	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
		return &out, json.Unmarshal(apiErr.Raw, &out)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateGroup implements seed.Registry over HTTP.
func (c *client) CreateGroup(ctx context.Context, input usecase.CreateGroupInput) (*domain.MainGroup, error) {
	var out dto.GroupResponse
	err := c.postJSON(ctx, "/groups", dto.CreateGroupRequest{Name: input.Name, Nature: input.Nature}, &out, nil)
	if err := conflictAs(err, domain.ErrDuplicateGroupName); err != nil {
		return nil, err
	}
	return &domain.MainGroup{ID: out.ID, Name: out.Name, Nature: domain.Nature(out.Nature)}, nil
}

// CreateAccount implements seed.Registry over HTTP.
func (c *client) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	var out dto.AccountResponse
	err := c.postJSON(ctx, "/accounts", dto.CreateAccountRequest{
		Name:           input.Name,
		MobileNo:       input.MobileNo,
		GroupID:        input.GroupID,
		OpeningBalance: input.OpeningBalance,
		NormalSide:     input.NormalSide,
	}, &out, nil)
	if err := conflictAs(err, domain.ErrDuplicateAccountName); err != nil {
		return nil, err
	}
	return &domain.Account{ID: out.ID, Name: out.Name, GroupID: out.GroupID}, nil
}

// conflictAs turns a 409 into sentinel so callers can use errors.Is.
func conflictAs(err, sentinel error) error {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
		return fmt.Errorf("%w: %s", sentinel, apiErr.Body.Message)
	}
	return err
}
