package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mester2001/portfolio/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, token)
}

func TestNewClient(t *testing.T) {
	client := NewClient("", "test-token")

	assert.NotNil(t, client)
	assert.Equal(t, "test-token", client.token)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_makeRequest(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		validateReq func(t *testing.T, r *http.Request)
	}{
		{
			name:  "request with token",
			token: "test-token",
			validateReq: func(t *testing.T, r *http.Request) {
				assert.Equal(t, "token test-token", r.Header.Get("Authorization"))
				assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
				assert.Equal(t, http.MethodGet, r.Method)
			},
		},
		{
			name:  "anonymous request",
			token: "",
			validateReq: func(t *testing.T, r *http.Request) {
				assert.Empty(t, r.Header.Get("Authorization"))
				assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.token, func(w http.ResponseWriter, r *http.Request) {
				tt.validateReq(t, r)
				w.WriteHeader(http.StatusOK)
			})

			resp, err := client.makeRequest(context.Background(), http.MethodGet, "/test")
			require.NoError(t, err)
			resp.Body.Close()
		})
	}
}

func TestClient_GetUser(t *testing.T) {
	tests := []struct {
		name          string
		handler       http.HandlerFunc
		wantBio       *string
		wantErr       string
		wantReference string
	}{
		{
			name: "profile with bio",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/Mester2001", r.URL.Path)
				w.Write([]byte(`{"login":"Mester2001","name":"Mester","bio":"Go developer","avatar_url":"https://avatars/x.png"}`))
			},
			wantBio: strPtr("Go developer"),
		},
		{
			name: "null bio",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"login":"Mester2001","bio":null}`))
			},
		},
		{
			name: "user not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr:       "Not found on GitHub",
			wantReference: errors.RefGitHubNotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:       "Unexpected response from GitHub API",
			wantReference: errors.RefGitHubAPI,
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`invalid json`))
			},
			wantErr:       "Failed to parse GitHub API response",
			wantReference: errors.RefGitHubAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, "", tt.handler)

			user, err := client.GetUser(context.Background(), "Mester2001")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.Is(err, tt.wantReference))
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Mester2001", user.Login)
			assert.Equal(t, tt.wantBio, user.Bio)
		})
	}
}

func TestClient_ListRepositories(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/Mester2001/repos", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode([]Repository{
			{Name: "foo", StargazersCount: 3, ForksCount: 1},
			{Name: "bar", StargazersCount: 2},
		})
	})

	repos, err := client.ListRepositories(context.Background(), "Mester2001")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, 3, repos[0].StargazersCount)
	assert.Equal(t, 1, repos[0].ForksCount)
}

func TestClient_ListFollowers_NoPaging(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/Mester2001/followers", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`[{"login":"a"},{"login":"b"}]`))
	})

	followers, err := client.ListFollowers(context.Background(), "Mester2001")
	require.NoError(t, err)
	assert.Len(t, followers, 2)
}

func TestClient_ListEvents(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/Mester2001/events", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		w.Write([]byte(`[{"id":"1","type":"PushEvent","repo":{"name":"Mester2001/foo"},"created_at":"2024-05-01T10:00:00Z","payload":{"commits":[{},{},{}]}}]`))
	})

	events, err := client.ListEvents(context.Background(), "Mester2001")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "PushEvent", events[0].Type)
	require.NotNil(t, events[0].Repo)
	assert.Equal(t, "Mester2001/foo", events[0].Repo.Name)
	assert.JSONEq(t, `{"commits":[{},{},{}]}`, string(events[0].Payload))
}

func TestClient_NonListBodyIsEmpty(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"something odd"}`))
	})

	repos, err := client.ListRepositories(context.Background(), "Mester2001")
	require.NoError(t, err)
	assert.NotNil(t, repos)
	assert.Empty(t, repos)
}

func TestClient_MalformedListIsError(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"stargazers_count":"many"}]`))
	})

	repos, err := client.ListRepositories(context.Background(), "Mester2001")
	require.Error(t, err)
	assert.Nil(t, repos)
	assert.True(t, errors.Is(err, errors.RefGitHubAPI))
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(server.URL, "")
	server.Close()

	_, err := client.ListFollowers(context.Background(), "Mester2001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to reach GitHub")
}

func strPtr(s string) *string { return &s }
