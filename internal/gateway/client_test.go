package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/config"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(config.GatewayConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, nil)
	return client, server
}

func TestListArticlesDecodesPage(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"isSuccess": true,
			"data": {
				"items": [
					{"id":"a1","title":"Admission FAQ","content":"<p>x</p>","universityId":"u1","status":"Pending","createdAt":"2026-03-01T00:00:00Z"}
				],
				"pageNumber": 2, "totalPages": 5, "totalCount": 42,
				"hasPreviousPage": true, "hasNextPage": true
			}
		}`))
	})

	articles, page, err := client.ListArticles(context.Background(), Session{Token: "tok-1"}, models.StatusPending, 2, 10)
	require.NoError(t, err)
	require.Equal(t, "/articles/Pending", gotPath)
	require.Equal(t, "Bearer tok-1", gotAuth)
	require.Contains(t, gotQuery, "pageNumber=2")
	require.Contains(t, gotQuery, "pageSize=10")
	require.Len(t, articles, 1)
	require.Equal(t, "a1", articles[0].ID)
	require.Equal(t, models.StatusPending, articles[0].Status)
	require.Equal(t, 5, page.TotalPages)
	require.Equal(t, 42, page.TotalCount)
}

func TestCallWithoutTokenStillAttempted(t *testing.T) {
	var sawAuthHeader bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		sawAuthHeader = r.Header.Get("Authorization") != ""
		_, _ = w.Write([]byte(`{"isSuccess":true,"data":{"items":[],"pageNumber":1,"totalPages":0,"totalCount":0}}`))
	})

	_, _, err := client.ListArticles(context.Background(), Session{}, models.StatusDraft, 1, 10)
	require.NoError(t, err)
	require.False(t, sawAuthHeader)
}

func TestIsSuccessFalseIsGatewayRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"isSuccess":false,"message":"article already submitted"}`))
	})

	err := client.SubmitArticle(context.Background(), Session{Token: "t"}, "a1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrGatewayRejected.Code, appErr.Code)
	require.Equal(t, "article already submitted", appErr.Message)
}

func TestHTTPErrorStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusUnauthorized, appErrors.ErrUnauthorized.Code},
		{http.StatusForbidden, appErrors.ErrForbidden.Code},
		{http.StatusNotFound, appErrors.ErrNotFound.Code},
		{http.StatusInternalServerError, appErrors.ErrGatewayRejected.Code},
	}
	for _, tc := range cases {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		err := client.ApproveArticle(context.Background(), Session{Token: "t"}, "a1")
		require.Error(t, err)
		require.Equal(t, tc.code, appErrors.FromError(err).Code, "status %d", tc.status)
	}
}

func TestNetworkErrorKind(t *testing.T) {
	client := NewClient(config.GatewayConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, nil)
	err := client.SubmitArticle(context.Background(), Session{Token: "t"}, "a1")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrGatewayNetwork.Code, appErrors.FromError(err).Code)
	require.Equal(t, appErrors.KindNetwork, appErrors.KindOf(err))
}

func TestMalformedArticlePayloadFailsFast(t *testing.T) {
	// Missing id and an unknown status must not leak into the surfaces.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"isSuccess":true,"data":{"title":"x","status":"Weird"}}`))
	})

	_, err := client.GetArticle(context.Background(), Session{Token: "t"}, "a1")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrGatewayMalformed.Code, appErrors.FromError(err).Code)
}

func TestEventStatusCodeMapping(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"isSuccess": true,
			"data": {"id":"e1","name":"Open day","content":"c","universityId":"u1","status":4,"startDate":"2026-10-01T09:00:00Z","createdAt":"2026-09-01T00:00:00Z"}
		}`))
	})

	event, err := client.GetEvent(context.Background(), Session{Token: "t"}, "e1")
	require.NoError(t, err)
	require.Equal(t, models.StatusCancelled, event.Status)
}

func TestEventUnknownStatusCodeRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"isSuccess": true,
			"data": {"id":"e1","name":"Open day","status":9,"startDate":"2026-10-01T09:00:00Z"}
		}`))
	})

	_, err := client.GetEvent(context.Background(), Session{Token: "t"}, "e1")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrGatewayMalformed.Code, appErrors.FromError(err).Code)
}

func TestLoginParsesTokenAndRole(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{
			"isSuccess": true,
			"data": {"token":"gw-token","user":{"id":"u1","email":"staff@uni.edu","fullName":"Staff","role":"STAFF","universityId":"uni-1"}}
		}`))
	})

	result, err := client.Login(context.Background(), "staff@uni.edu", "secret")
	require.NoError(t, err)
	require.Equal(t, "gw-token", result.Token)
	require.Equal(t, models.RoleStaff, result.User.Role)
	require.Equal(t, "uni-1", result.User.UniversityID)
}

func TestLoginUnknownRoleRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"isSuccess": true,
			"data": {"token":"gw-token","user":{"id":"u1","email":"x@y.z","role":"WIZARD"}}
		}`))
	})

	_, err := client.Login(context.Background(), "x@y.z", "secret")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrGatewayMalformed.Code, appErrors.FromError(err).Code)
}

func TestMajorStatusCodeMapsToSoftDelete(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"isSuccess": true,
			"data": {
				"items": [
					{"id":"m1","code":"CS","name":"Computer Science","universityId":"u1","status":0},
					{"id":"m2","code":"EE","name":"Electrical Engineering","universityId":"u1","status":1}
				],
				"pageNumber":1,"totalPages":1,"totalCount":2
			}
		}`))
	})

	majors, _, err := client.ListMajors(context.Background(), Session{Token: "t"}, "u1", models.CatalogFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.False(t, majors[0].IsDeleted)
	require.True(t, majors[1].IsDeleted)
}
