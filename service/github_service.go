package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"vitrine-catalogo/models"
)

// reviewsFilePath is the shared document holding every entry's reviews,
// keyed by entry id.
const reviewsFilePath = "comentarios.json"

// GitHubService mirrors the review document to a GitHub repository through
// the contents API: raw GET for reads, sha read-modify-write PUT for
// writes. Without a token the service is disabled and reviews stay
// local-only.
type GitHubService struct {
	apiBase string // "https://api.github.com", overridable in tests
	owner   string
	repo    string
	token   string
	branch  string // explicit branch; "" means discover the default

	client *http.Client

	mu            sync.Mutex
	defaultBranch string // discovered once per process, then cached
}

// NewGitHubService creates a GitHubService. branch may be empty, in which
// case the repository's default branch is discovered on first use.
func NewGitHubService(owner, repo, token, branch string) *GitHubService {
	return &GitHubService{
		apiBase: "https://api.github.com",
		owner:   owner,
		repo:    repo,
		token:   token,
		branch:  branch,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// Ensure GitHubService implements RemoteReviewStoreInterface
var _ RemoteReviewStoreInterface = (*GitHubService)(nil)

// Enabled reports whether the mirror is configured.
func (s *GitHubService) Enabled() bool {
	return s != nil && s.token != "" && s.owner != "" && s.repo != ""
}

// LoadAll reads the shared review document. A missing file yields an empty
// map.
func (s *GitHubService) LoadAll(ctx context.Context) (map[string][]models.Review, error) {
	content, err := s.readFile(ctx, reviewsFilePath)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return map[string][]models.Review{}, nil
	}

	var all map[string][]models.Review
	if err := json.Unmarshal(content, &all); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", reviewsFilePath, err)
	}
	if all == nil {
		all = map[string][]models.Review{}
	}
	return all, nil
}

// SaveAll writes the full document back.
func (s *GitHubService) SaveAll(ctx context.Context, all map[string][]models.Review, message string) error {
	content, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize reviews: %w", err)
	}
	return s.writeFile(ctx, reviewsFilePath, content, message)
}

// resolveBranch returns the branch writes and reads are pinned to:
// the configured one, or the repository default discovered once and cached
// for the life of the process. Discovery failure falls back to "main".
func (s *GitHubService) resolveBranch(ctx context.Context) string {
	if s.branch != "" {
		return s.branch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.defaultBranch != "" {
		return s.defaultBranch
	}

	infoURL := fmt.Sprintf("%s/repos/%s/%s", s.apiBase, s.owner, s.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, infoURL, nil)
	if err != nil {
		return "main"
	}
	s.setHeaders(req, "application/vnd.github.v3+json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️  resolveBranch: Could not fetch repo info, assuming main: %v", err)
		return "main"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("⚠️  resolveBranch: Repo info returned status %d, assuming main", resp.StatusCode)
		return "main"
	}

	var info struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.DefaultBranch == "" {
		return "main"
	}

	s.defaultBranch = info.DefaultBranch
	return s.defaultBranch
}

// readFile fetches a file's raw content on the resolved branch. A 404
// returns (nil, nil): the document simply does not exist yet.
func (s *GitHubService) readFile(ctx context.Context, path string) ([]byte, error) {
	branch := s.resolveBranch(ctx)
	fileURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		s.apiBase, s.owner, s.repo, path, url.QueryEscape(branch))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	s.setHeaders(req, "application/vnd.github.v3.raw")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to read %s: status %d: %s", path, resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// writeFile updates a file through the contents API. The current sha is
// fetched first on the same ref; an absent sha means the PUT creates the
// file.
func (s *GitHubService) writeFile(ctx context.Context, path string, content []byte, message string) error {
	branch := s.resolveBranch(ctx)
	baseURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.apiBase, s.owner, s.repo, path)

	sha := s.currentSHA(ctx, baseURL, branch)

	body := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  branch,
	}
	if sha != "" {
		body["sha"] = sha
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize write request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	s.setHeaders(req, "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to write %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	return nil
}

// currentSHA reads the file's revision token on the given branch, or ""
// when the file does not exist yet.
func (s *GitHubService) currentSHA(ctx context.Context, baseURL, branch string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?ref="+url.QueryEscape(branch), nil)
	if err != nil {
		return ""
	}
	s.setHeaders(req, "application/vnd.github.v3+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var meta struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return ""
	}
	return meta.SHA
}

func (s *GitHubService) setHeaders(req *http.Request, accept string) {
	req.Header.Set("Authorization", "token "+s.token)
	req.Header.Set("Accept", accept)
}
