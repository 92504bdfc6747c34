package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/allisson/ros/internal/errors"
	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
)

// maxResponseBytes caps how much of an RBAC response body is read.
const maxResponseBytes = 4 << 20

// AccessEntry is one element of the RBAC access list.
type AccessEntry struct {
	Permission          *string           `json:"permission"`
	ResourceDefinitions []json.RawMessage `json:"resourceDefinitions,omitempty"`
}

// AccessResponse is the body returned by the RBAC access endpoint.
type AccessResponse struct {
	Data *[]AccessEntry `json:"data"`
}

// Permissions extracts the permission of every entry.
// A missing data list or an entry without a permission is a malformed response.
func (r *AccessResponse) Permissions() ([]rbacDomain.Permission, error) {
	if r.Data == nil {
		return nil, rbacDomain.NewMalformedResponseError(apperrors.New("response has no data list"))
	}

	permissions := make([]rbacDomain.Permission, 0, len(*r.Data))
	for i, entry := range *r.Data {
		if entry.Permission == nil {
			return nil, rbacDomain.NewMalformedResponseError(
				fmt.Errorf("data entry %d has no permission", i),
			)
		}
		permissions = append(permissions, rbacDomain.Permission(*entry.Permission))
	}
	return permissions, nil
}

type permissionClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPermissionClient creates a PermissionClient for the RBAC service at baseURL.
func NewPermissionClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (PermissionClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid rbac service url")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid rbac service url %q: scheme and host are required", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &permissionClient{
		baseURL:    parsed,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// AccessURL returns the access endpoint for application resolved against baseURL.
// The endpoint path is absolute, so any path on the base URL is replaced.
func AccessURL(baseURL *url.URL, application rbacDomain.Application) string {
	ref := &url.URL{
		Path:     rbacDomain.AccessEndpoint,
		RawQuery: url.Values{rbacDomain.ApplicationQueryParam: {string(application)}}.Encode(),
	}
	return baseURL.ResolveReference(ref).String()
}

// FetchPermissions queries the access endpoint and returns the granted permissions.
func (p *permissionClient) FetchPermissions(
	ctx context.Context,
	application rbacDomain.Application,
	credential rbacDomain.Credential,
	logger *slog.Logger,
) ([]rbacDomain.Permission, error) {
	resp, err := p.Fetch(ctx, http.MethodGet, AccessURL(p.baseURL, application), credential, logger)
	if err != nil {
		return nil, err
	}
	return resp.Permissions()
}

// Fetch performs one request against the RBAC service.
func (p *permissionClient) Fetch(
	ctx context.Context,
	method string,
	rawURL string,
	credential rbacDomain.Credential,
	logger *slog.Logger,
) (*AccessResponse, error) {
	if logger == nil {
		logger = p.logger
	}

	verb := strings.ToUpper(method)
	if !rbacDomain.IsAllowedMethod(verb) {
		logger.Error("refusing rbac request with invalid method", slog.String("method", method))
		return nil, rbacDomain.NewInvalidMethodError(method)
	}

	req, err := http.NewRequestWithContext(ctx, verb, rawURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build rbac request")
	}
	req.Header.Set(rbacDomain.IdentityHeader, string(credential))
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Error("rbac request failed", slog.String("url", rawURL), slog.Any("error", err))
		return nil, rbacDomain.NewUnavailableError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := ValidateResponse(resp, req.Header, logger); err != nil {
		return nil, err
	}

	var accessResponse AccessResponse
	decoder := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if err := decoder.Decode(&accessResponse); err != nil {
		logger.Error("failed to decode rbac response", slog.Any("error", err))
		return nil, rbacDomain.NewMalformedResponseError(err)
	}

	return &accessResponse, nil
}
