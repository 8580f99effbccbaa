package apiclient

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

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
)

const defaultTimeout = 15 * time.Second

// Client talks to the clinic scheduler HTTP API. It implements the
// appointment API and opening-hours source used by the booking flow.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logging.OrNop(logger),
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

type listResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Patient struct {
		ID string `json:"id"`
	} `json:"patient"`
}

// Login exchanges credentials for an identity carrying a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*auth.Identity, error) {
	body := map[string]string{"email": email, "password": password}

	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	if out.Token == "" || out.Patient.ID == "" {
		return nil, fmt.Errorf("%w: login response without token", booking.ErrServer)
	}
	return &auth.Identity{Subject: out.Patient.ID, Role: auth.RolePatient, Token: out.Token}, nil
}

// OpeningHours returns the weekly opening hours of a doctor.
func (c *Client) OpeningHours(ctx context.Context, doctorID string) ([]availability.OpeningHour, error) {
	var out listResponse[availability.OpeningHour]
	path := "/api/doctors/" + url.PathEscape(doctorID) + "/opening-hours"
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return []availability.OpeningHour{}, nil
	}
	return out.Data, nil
}

// Slots returns the server-side availability, already grouped by date.
func (c *Client) Slots(ctx context.Context, doctorID string, days int) ([]availability.DateGroup, error) {
	var out listResponse[availability.DateGroup]
	path := fmt.Sprintf("/api/doctors/%s/slots?days=%d", url.PathEscape(doctorID), days)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return []availability.DateGroup{}, nil
	}
	return out.Data, nil
}

// CreateAppointment sends one create-appointment request.
func (c *Client) CreateAppointment(
	ctx context.Context,
	token string,
	req booking.AppointmentRequest,
) (*booking.Appointment, error) {
	var out booking.Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyAppointments lists the caller's appointments.
func (c *Client) MyAppointments(ctx context.Context, token string) ([]booking.Appointment, error) {
	var out listResponse[booking.Appointment]
	if err := c.do(ctx, http.MethodGet, "/api/me/appointments", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CancelAppointment cancels one of the caller's appointments.
func (c *Client) CancelAppointment(ctx context.Context, token, appointmentID string) (*booking.Appointment, error) {
	var out booking.Appointment
	path := "/api/me/appointments/" + url.PathEscape(appointmentID) + "/cancel"
	if err := c.do(ctx, http.MethodPatch, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", booking.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", booking.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		c.logger.Debug("api request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error_code", apiErr.Code),
		)
		return classifyStatus(apiErr)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", booking.ErrServer, err)
	}
	return nil
}

func classifyStatus(apiErr *APIError) error {
	switch apiErr.Status {
	case http.StatusConflict:
		return errors.Join(booking.ErrSlotConflict, apiErr)
	case http.StatusUnauthorized:
		return errors.Join(booking.ErrUnauthenticated, apiErr)
	default:
		return errors.Join(booking.ErrServer, apiErr)
	}
}
