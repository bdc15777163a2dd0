package opencage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/listings-marketplace/internal/config"
	"github.com/listings-marketplace/internal/domain"
	"github.com/listings-marketplace/internal/domain/repository"
	"go.uber.org/zap"
)

// APIError - ответ OpenCage с кодом, отличным от 200
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("opencage API error: status %d: %s", e.StatusCode, e.Message)
}

// HTTPStatus возвращает HTTP статус ответа провайдера
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// ProviderMessage возвращает status.message из ответа провайдера
func (e *APIError) ProviderMessage() string {
	return e.Message
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limit      int
	logger     *zap.Logger
}

// NewClient создает клиент OpenCage Geocoding API.
// Ключ должен быть проверен config.Load до вызова.
func NewClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.Geocoder {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 5
	}
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limit:   limit,
		logger:  logger,
	}
}

// Geocode выполняет прямое геокодирование строки запроса
func (c *client) Geocode(ctx context.Context, query string) ([]domain.GeocodeCandidate, error) {
	params := url.Values{
		"q":              {query},
		"key":            {c.apiKey},
		"limit":          {strconv.Itoa(c.limit)},
		"no_annotations": {"1"},
	}
	fullURL := c.baseURL + "/json?" + params.Encode()

	c.logger.Debug("Calling OpenCage Geocoding API",
		zap.String("query", query),
		zap.Int("limit", c.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = stripURL(err)
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
		c.logger.Error("OpenCage API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	var geoResp response
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	candidates := make([]domain.GeocodeCandidate, 0, len(geoResp.Results))
	for _, r := range geoResp.Results {
		candidates = append(candidates, r.toCandidate())
	}

	c.logger.Debug("OpenCage Geocoding API call successful",
		zap.String("query", query),
		zap.Int("results", len(candidates)))

	return candidates, nil
}

// stripURL убирает из *url.Error адрес запроса: в нем ключ API и текст запроса
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// errorMessage достаёт status.message из тела ошибки, иначе тело целиком
func errorMessage(body []byte) string {
	var geoResp response
	if err := json.Unmarshal(body, &geoResp); err == nil && geoResp.Status.Message != "" {
		return geoResp.Status.Message
	}
	return string(body)
}

// OpenCage API response types.

type response struct {
	Results []result `json:"results"`
	Status  status   `json:"status"`
}

type status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type result struct {
	Formatted  string     `json:"formatted"`
	Geometry   *geometry  `json:"geometry"`
	Components components `json:"components"`
}

type geometry struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type components struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	Country string `json:"country"`
}

func (r result) toCandidate() domain.GeocodeCandidate {
	var cand domain.GeocodeCandidate
	if r.Geometry != nil {
		cand.Longitude = r.Geometry.Lng
		cand.Latitude = r.Geometry.Lat
	}
	if city := r.Components.locality(); city != "" {
		cand.City = &city
	}
	if r.Components.Country != "" {
		country := r.Components.Country
		cand.Country = &country
	}
	if r.Formatted != "" {
		formatted := r.Formatted
		cand.FormattedAddress = &formatted
	}
	return cand
}

// locality - city, для небольших населенных пунктов town/village
func (c components) locality() string {
	switch {
	case c.City != "":
		return c.City
	case c.Town != "":
		return c.Town
	default:
		return c.Village
	}
}
