package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"invoices/internal/domain"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

type pairResponse struct {
	Result         string           `json:"result"`
	BaseCode       string           `json:"base_code"`
	TargetCode     string           `json:"target_code"`
	ConversionRate *decimal.Decimal `json:"conversion_rate"`
	ErrorType      string           `json:"error-type"`
}

// GetExchangeRate asks the pair endpoint how many units of target one unit of base buys.
// Exactly one request is made per call.
func (c *ExchangeRateClient) GetExchangeRate(ctx context.Context, base string, target string) (decimal.Decimal, error) {
	log := logrus.WithFields(logrus.Fields{"component": "exchange_rate_client", "base": base, "target": target})

	u, err := url.Parse(c.baseURL)
	if err != nil {
		log.WithError(err).Error("failed to parse exchange rate base URL")
		return decimal.Zero, fmt.Errorf("%w: failed to parse base URL: %v", domain.ErrExternalService, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + c.apiKey + "/pair/" + base + "/" + target

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.WithError(err).Error("failed to create exchange rate request")
		return decimal.Zero, fmt.Errorf("%w: failed to create request for pair %q/%q: %v", domain.ErrExternalService, base, target, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Error("exchange rate request failed")
		return decimal.Zero, fmt.Errorf("%w: failed to execute request for pair %q/%q: %v", domain.ErrExternalService, base, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("status", resp.StatusCode).Error("exchange rate api returned unexpected status")
		return decimal.Zero, fmt.Errorf("%w: unexpected status code %d for pair %q/%q", domain.ErrExternalService, resp.StatusCode, base, target)
	}

	var body pairResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.WithError(err).Error("failed to decode exchange rate response")
		return decimal.Zero, fmt.Errorf("%w: failed to decode response for pair %q/%q: %v", domain.ErrExternalService, base, target, err)
	}

	if body.Result != "success" {
		log.WithFields(logrus.Fields{"result": body.Result, "error_type": body.ErrorType}).Error("exchange rate api returned non-success result")
		return decimal.Zero, fmt.Errorf("%w: api returned non-success result for pair %q/%q: %s", domain.ErrExternalService, base, target, body.Result)
	}

	if body.ConversionRate == nil || !body.ConversionRate.IsPositive() {
		log.Error("exchange rate response carries no usable conversion rate")
		return decimal.Zero, fmt.Errorf("%w: missing conversion rate for pair %q/%q", domain.ErrExternalService, base, target)
	}

	log.WithField("rate", body.ConversionRate.String()).Debug("exchange rate retrieved")
	return *body.ConversionRate, nil
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string, apiKey string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}
