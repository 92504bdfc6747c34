package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/ros/internal/identity"
	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
)

type mockPermissionFetcher struct {
	mock.Mock
}

func (m *mockPermissionFetcher) FetchPermissions(
	ctx context.Context,
	application rbacDomain.Application,
	credential rbacDomain.Credential,
	logger *slog.Logger,
) ([]rbacDomain.Permission, error) {
	args := m.Called(ctx, application, credential, logger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rbacDomain.Permission), args.Error(1)
}

func encodedIdentity(t *testing.T, orgID string) string {
	t.Helper()
	header, err := identity.Encode(&identity.Identity{OrgID: orgID, Type: "User"})
	require.NoError(t, err)
	return header
}

func TestRunCheckPermissions(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	header := encodedIdentity(t, "3340851")

	t.Run("text", func(t *testing.T) {
		fetcher := &mockPermissionFetcher{}
		fetcher.On("FetchPermissions", ctx, rbacDomain.Application("ros"), rbacDomain.Credential(header), logger).
			Return([]rbacDomain.Permission{"ros:*:read"}, nil)

		var out bytes.Buffer
		err := RunCheckPermissions(ctx, fetcher, logger, header, "ros", "text", IOTuple{Writer: &out})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Organization: 3340851")
		assert.Contains(t, out.String(), "- ros:*:read")
		fetcher.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		fetcher := &mockPermissionFetcher{}
		fetcher.On("FetchPermissions", ctx, rbacDomain.Application("ros"), rbacDomain.Credential(header), logger).
			Return([]rbacDomain.Permission{"ros:*:*", "ros:*:read"}, nil)

		var out bytes.Buffer
		err := RunCheckPermissions(ctx, fetcher, logger, header, "ros", "json", IOTuple{Writer: &out})
		require.NoError(t, err)

		var result CheckPermissionsResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, CheckPermissionsResult{
			Application: "ros",
			OrgID:       "3340851",
			Permissions: []string{"ros:*:*", "ros:*:read"},
		}, result)
	})

	t.Run("no-permissions", func(t *testing.T) {
		fetcher := &mockPermissionFetcher{}
		fetcher.On("FetchPermissions", ctx, rbacDomain.Application("ros"), rbacDomain.Credential(header), logger).
			Return([]rbacDomain.Permission{}, nil)

		var out bytes.Buffer
		err := RunCheckPermissions(ctx, fetcher, logger, header, "ros", "text", IOTuple{Writer: &out})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "No permissions granted.")
	})

	t.Run("upstream-error", func(t *testing.T) {
		fetcher := &mockPermissionFetcher{}
		fetcher.On("FetchPermissions", ctx, rbacDomain.Application("ros"), rbacDomain.Credential(header), logger).
			Return(nil, rbacDomain.NewUpstreamStatusError(403))

		err := RunCheckPermissions(ctx, fetcher, logger, header, "ros", "text", IOTuple{Writer: &bytes.Buffer{}})

		require.Error(t, err)
		assert.ErrorIs(t, err, rbacDomain.ErrUpstreamForbidden)
	})

	t.Run("invalid-arguments", func(t *testing.T) {
		tests := []struct {
			name        string
			identity    string
			application string
			format      string
		}{
			{name: "empty identity", identity: "", application: "ros", format: "text"},
			{name: "application with padding", identity: header, application: " ros", format: "text"},
			{name: "unknown format", identity: header, application: "ros", format: "yaml"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				fetcher := &mockPermissionFetcher{}

				err := RunCheckPermissions(
					ctx, fetcher, logger, tt.identity, tt.application, tt.format, IOTuple{Writer: &bytes.Buffer{}},
				)

				require.ErrorContains(t, err, "invalid arguments")
				fetcher.AssertNotCalled(t, "FetchPermissions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("identity-not-base64", func(t *testing.T) {
		fetcher := &mockPermissionFetcher{}

		err := RunCheckPermissions(ctx, fetcher, logger, "not base64!", "ros", "text", IOTuple{Writer: &bytes.Buffer{}})

		require.ErrorContains(t, err, "failed to decode identity")
		assert.ErrorIs(t, err, identity.ErrInvalidIdentity)
		fetcher.AssertNotCalled(t, "FetchPermissions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("identity-without-org", func(t *testing.T) {
		fetcher := &mockPermissionFetcher{}
		noOrg := encodedIdentity(t, "")

		err := RunCheckPermissions(ctx, fetcher, logger, noOrg, "ros", "text", IOTuple{Writer: &bytes.Buffer{}})

		require.ErrorContains(t, err, "failed to decode identity")
		fetcher.AssertNotCalled(t, "FetchPermissions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
