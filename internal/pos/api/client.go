// Package api реализует HTTP-клиент контракта удалённого реестра.
// Адресация документов идет по ключам идемпотентности (id продажи, SKU),
// поэтому повторная доставка перезаписывает документ, а не дублирует.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/bookpos/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет интерфейс клиента удалённого реестра
type ClientAPI interface {
	// PutSale реплицирует полный снимок продажи: PUT /sales/{saleId}
	PutSale(ctx context.Context, saleID string, doc json.RawMessage) error

	// PatchStock реплицирует изменение остатка: PATCH /products/{sku}
	PatchStock(ctx context.Context, sku string, doc json.RawMessage) error

	// PutProduct реплицирует документ товара: PUT /products/{sku}
	PutProduct(ctx context.Context, sku string, doc json.RawMessage) error

	// DeleteProduct удаляет документ товара: DELETE /products/{sku}
	DeleteProduct(ctx context.Context, sku string) error

	// GetProducts забирает снимок каталога: GET /products.
	// Принимает обе формы ответа: массив документов и объект,
	// ключованный по SKU.
	GetProducts(ctx context.Context) ([]api.ProductDocument, error)

	// GetDailySummary читает дневной агрегат продаж.
	// Отсутствующий документ - это нулевой агрегат, а не ошибка.
	GetDailySummary(ctx context.Context, date string) (*api.DailySummary, error)

	// PutDailySummary записывает дневной агрегат продаж
	PutDailySummary(ctx context.Context, date string, summary api.DailySummary) error
}

// StatusError представляет ответ реестра с кодом вне 2xx.
// Диспетчер считает такой ответ отказом доставки и повторяет попытку.
type StatusError struct {
	Body string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ledger returned status %d: %s", e.Code, e.Body)
}

// Client представляет HTTP клиент для взаимодействия с реестром
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ ClientAPI = (*Client)(nil)

// NewClient создает новый клиент реестра.
// timeout ограничивает каждую отдельную попытку доставки.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// PutSale реплицирует полный снимок продажи
func (c *Client) PutSale(ctx context.Context, saleID string, doc json.RawMessage) error {
	path := "/sales/" + url.PathEscape(saleID)
	if err := c.doRequest(ctx, http.MethodPut, path, doc, nil); err != nil {
		return fmt.Errorf("put sale request failed: %w", err)
	}
	return nil
}

// PatchStock реплицирует изменение остатка
func (c *Client) PatchStock(ctx context.Context, sku string, doc json.RawMessage) error {
	path := "/products/" + url.PathEscape(sku)
	if err := c.doRequest(ctx, http.MethodPatch, path, doc, nil); err != nil {
		return fmt.Errorf("patch stock request failed: %w", err)
	}
	return nil
}

// PutProduct реплицирует документ товара
func (c *Client) PutProduct(ctx context.Context, sku string, doc json.RawMessage) error {
	path := "/products/" + url.PathEscape(sku)
	if err := c.doRequest(ctx, http.MethodPut, path, doc, nil); err != nil {
		return fmt.Errorf("put product request failed: %w", err)
	}
	return nil
}

// DeleteProduct удаляет документ товара
func (c *Client) DeleteProduct(ctx context.Context, sku string) error {
	path := "/products/" + url.PathEscape(sku)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete product request failed: %w", err)
	}
	return nil
}

// GetProducts забирает снимок каталога
func (c *Client) GetProducts(ctx context.Context) ([]api.ProductDocument, error) {
	var raw json.RawMessage
	if err := c.doRequest(ctx, http.MethodGet, "/products", nil, &raw); err != nil {
		return nil, fmt.Errorf("get products request failed: %w", err)
	}

	return decodeProducts(raw)
}

// GetDailySummary читает дневной агрегат продаж
func (c *Client) GetDailySummary(ctx context.Context, date string) (*api.DailySummary, error) {
	summary := &api.DailySummary{}
	path := "/daily_sales/" + url.PathEscape(date)
	err := c.doRequest(ctx, http.MethodGet, path, nil, summary)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			// Первый запрос за день - агрегата еще нет
			return &api.DailySummary{}, nil
		}
		return nil, fmt.Errorf("get daily summary request failed: %w", err)
	}
	return summary, nil
}

// PutDailySummary записывает дневной агрегат продаж
func (c *Client) PutDailySummary(ctx context.Context, date string, summary api.DailySummary) error {
	path := "/daily_sales/" + url.PathEscape(date)
	if err := c.doRequest(ctx, http.MethodPut, path, summary, nil); err != nil {
		return fmt.Errorf("put daily summary request failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return &StatusError{Code: resp.StatusCode, Body: errResp.Message}
		}
		return &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// decodeProducts разбирает снимок каталога.
// Firebase-подобные реестры отдают объект map[sku]document,
// остальные - массив; принимаем обе формы.
func decodeProducts(raw json.RawMessage) ([]api.ProductDocument, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []api.ProductDocument
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var bySKU map[string]api.ProductDocument
	if err := json.Unmarshal(raw, &bySKU); err != nil {
		return nil, fmt.Errorf("failed to decode products snapshot: %w", err)
	}

	list = make([]api.ProductDocument, 0, len(bySKU))
	for sku, doc := range bySKU {
		if doc.SKU == "" {
			doc.SKU = sku
		}
		list = append(list, doc)
	}

	return list, nil
}
