package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"barberia/internal/db"
	"barberia/internal/entities"
)

// APIError is a non-2xx answer from the booking service, carrying the
// server's own error message when one was sent.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status=%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("la solicitud falló (status=%d)", e.StatusCode)
}

// Client is a minimal HTTP client for the booking service.
type Client struct {
	hc      *http.Client
	baseURL string
}

func New(baseURL string) *Client {
	return &Client{
		hc:      &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// HorasOcupadas fetches the booked times for a date.
func (c *Client) HorasOcupadas(ctx context.Context, fecha string) ([]string, error) {
	q := url.Values{"fecha": {fecha}}
	var out struct {
		HorasOcupadas []string `json:"horasOcupadas"`
	}
	if err := c.get(ctx, "/reservas-por-fecha", q, &out); err != nil {
		return nil, err
	}
	return out.HorasOcupadas, nil
}

// Verificar reports whether the exact (fecha, hora) pair is reserved.
func (c *Client) Verificar(ctx context.Context, fecha, hora string) (bool, error) {
	q := url.Values{"fecha": {fecha}, "hora": {hora}}
	var out struct {
		Reservado bool `json:"reservado"`
	}
	if err := c.get(ctx, "/verificar", q, &out); err != nil {
		return false, err
	}
	return out.Reservado, nil
}

// Reservar books the turno and returns the stored record.
func (c *Client) Reservar(ctx context.Context, req entities.TurnoRequest) (*db.Turno, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reservar", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, raw)
	}

	var out struct {
		Data *db.Turno `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("respuesta inválida del servidor: %w", err)
	}
	return out.Data, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("respuesta inválida del servidor: %w", err)
	}
	return nil
}

func apiError(status int, raw []byte) error {
	var body struct {
		Error string `json:"error"`
	}
	json.Unmarshal(raw, &body)
	return &APIError{StatusCode: status, Message: body.Error}
}
