package products

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/ports"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa ProductsService.
var _ ports.ProductsService = (*Client)(nil)

const productsPath = "/api/v1/productos"

// Client adaptador HTTP hacia el servicio de productos.
// Todo fallo (configuración ausente, transporte, no-2xx, cuerpo indecodificable)
// se clasifica como SERVICE_UNAVAILABLE: el llamador nunca ve errores crudos de red.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el adaptador. Una configuración vacía no es fatal:
// cada llamada responde SERVICE_UNAVAILABLE hasta que se configure.
func NewClient(cfg config.ProductsConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			// Una sola llamada acotada; sin reintentos ni circuit breaker.
			Timeout: 5 * time.Second,
		},
	}
}

// FetchProducts obtiene una página de productos (query params page/limit,
// header X-API-KEY) y decodifica el payload {data, meta}.
func (c *Client) FetchProducts(ctx context.Context, page, limit int) (*dto.ProductPage, error) {
	if c.baseURL == "" {
		return nil, domain.NewServiceUnavailableError("La URL del servicio de productos no está configurada.")
	}
	if c.apiKey == "" {
		return nil, domain.NewServiceUnavailableError("La API key del servicio de productos no está configurada.")
	}

	reqURL := c.baseURL + productsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewServiceUnavailableError(fmt.Sprintf("No se pudo construir la petición al servicio de productos: %v", err))
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewServiceUnavailableError(fmt.Sprintf("No se pudo conectar con el servicio de productos: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.NewServiceUnavailableError(
			fmt.Sprintf("El servicio de productos respondió %d: %s", resp.StatusCode, string(body)))
	}

	var pageResp dto.ProductPage
	if err := json.NewDecoder(resp.Body).Decode(&pageResp); err != nil {
		return nil, domain.NewServiceUnavailableError(fmt.Sprintf("Respuesta inválida del servicio de productos: %v", err))
	}
	return &pageResp, nil
}
