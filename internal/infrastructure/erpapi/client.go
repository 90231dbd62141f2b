package erpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mcarvalho/Producao-api/internal/domain"
	"github.com/mcarvalho/Producao-api/pkg/logger"
)

// O backend espera números JSON nos campos de quantidade e custo;
// shopspring/decimal serializa como string entre aspas por padrão.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Config parâmetros de conexão com o backend REST do ERP.
type Config struct {
	BaseURL string
	Token   string // token de serviço; enviado como Bearer em toda requisição
	Timeout time.Duration
}

// Client é o cliente HTTP compartilhado pelos adaptadores de repositório.
// Usa net/http da biblioteca padrão; não requer SDK.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *logger.Logger
}

// NewClient constrói o cliente. log pode ser nil.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// get executa GET path e decodifica a resposta em out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post executa POST path com body JSON; out pode ser nil quando a resposta não importa.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// put executa PUT path com body JSON.
func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// del executa DELETE path.
func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("erpapi: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("erpapi: montar request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeout e erro de conexão caem aqui: mesma falha de transporte.
		return &domain.TransportError{Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportError{Status: resp.StatusCode, Detail: "ler resposta: " + err.Error(), Err: err}
	}

	if resp.StatusCode >= 400 {
		detail := extractDetail(raw)
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("detail", detail).
			Msg("backend respondeu com erro")
		return &domain.TransportError{Status: resp.StatusCode, Detail: detail}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &domain.TransportError{Status: resp.StatusCode, Detail: "decodificar resposta: " + err.Error(), Err: err}
		}
	}
	return nil
}

// extractDetail extrai a mensagem legível do payload de erro do backend.
// Convenção do servidor: { "detail": string | [ { "msg": string }, ... ] }.
// String vem como está; lista vira os msg unidos por "; "; qualquer outra coisa
// cai na mensagem genérica.
func extractDetail(raw []byte) string {
	const generic = "falha na comunicação com o servidor"

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Detail) == 0 {
		return generic
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil && s != "" {
		return s
	}

	var fieldErrs []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &fieldErrs); err == nil && len(fieldErrs) > 0 {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			if fe.Msg != "" {
				msgs = append(msgs, fe.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return generic
}
