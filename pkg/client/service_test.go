package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paymill/internal/fakeapi"
	"github.com/dmitrymomot/paymill/pkg/client"
	"github.com/dmitrymomot/paymill/pkg/resource"
	"github.com/dmitrymomot/paymill/pkg/transport"
	"github.com/dmitrymomot/paymill/pkg/validator"
)

func TestService(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(fakeapi.New())
	t.Cleanup(ts.Close)
	tr, err := transport.NewHTTPClient("key", transport.WithBaseURL(ts.URL))
	require.NoError(t, err)
	svc := client.NewService(tr)
	ctx := context.Background()

	c, err := svc.Create(ctx, "b@example.com", "first")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "a@example.com", "second")
	require.NoError(t, err)

	c.Description = "updated"
	_, err = svc.Update(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "updated", c.Description)

	list, err := svc.List(ctx, resource.ListOptions{Order: resource.OrderBy(client.OrderEmail, resource.Asc)})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.TotalCount)
	assert.Equal(t, "a@example.com", list.Items[0].Email)

	require.NoError(t, svc.Delete(ctx, c))
	_, err = svc.Get(ctx, c.ID)
	assert.True(t, resource.IsNotFound(err))

	_, err = svc.Update(ctx, &client.Client{})
	assert.True(t, validator.IsValidationError(err))
	assert.Equal(t, "", (*client.Client)(nil).GetID())
}
