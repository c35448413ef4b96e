package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"salesproject-backend/metrics"

	"github.com/tidwall/gjson"
)

// CEPDetails is the address data returned for a postal code.
type CEPDetails struct {
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"estado"`
}

// Empty reports whether no address field was returned.
func (d *CEPDetails) Empty() bool {
	return d == nil || (d.Street == "" && d.Neighborhood == "" && d.City == "" && d.State == "")
}

// CEPLookup resolves a postal code to address details. A nil result with a nil
// error means the code is unknown.
type CEPLookup interface {
	Lookup(ctx context.Context, postalCode string) (*CEPDetails, error)
}

// CEPClient queries a ViaCEP-compatible service: GET {base}/{cep}/json.
type CEPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCEPClient(baseURL string, timeout time.Duration) *CEPClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &CEPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *CEPClient) Lookup(ctx context.Context, postalCode string) (*CEPDetails, error) {
	details, err := c.lookup(ctx, postalCode)
	switch {
	case err != nil:
		metrics.ObserveCEPLookup("error")
	case details.Empty():
		metrics.ObserveCEPLookup("empty")
	default:
		metrics.ObserveCEPLookup("found")
	}
	return details, err
}

func (c *CEPClient) lookup(ctx context.Context, postalCode string) (*CEPDetails, error) {
	endpoint := fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(strings.TrimSpace(postalCode)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build cep request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("read cep response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cep lookup failed: status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("cep lookup returned invalid json")
	}

	doc := gjson.ParseBytes(body)
	// Unknown codes come back as {"erro": true}, older deployments send "true".
	if doc.Get("erro").Bool() {
		return nil, nil
	}

	state := doc.Get("estado").String()
	if state == "" {
		state = doc.Get("uf").String()
	}
	return &CEPDetails{
		Street:       doc.Get("logradouro").String(),
		Neighborhood: doc.Get("bairro").String(),
		City:         doc.Get("localidade").String(),
		State:        state,
	}, nil
}
