package contributions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v59/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/firejune/notion-github-embed/internal/models"
)

// contributionCalendarQuery fetches one year of daily counts and levels.
const contributionCalendarQuery = `
	query ($name: String!, $from: DateTime!, $to: DateTime!) {
		user(login: $name) {
			contributionsCollection(from: $from, to: $to) {
				contributionCalendar {
					weeks {
						contributionDays {
							date
							contributionCount
							contributionLevel
						}
					}
				}
			}
		}
	}
`

// contributionLevels maps GitHub's ContributionLevel enum to intensity buckets.
var contributionLevels = map[string]models.Intensity{
	"NONE":            0,
	"FIRST_QUARTILE":  1,
	"SECOND_QUARTILE": 2,
	"THIRD_QUARTILE":  3,
	"FOURTH_QUARTILE": 4,
}

// GraphQLQuery represents the structure of the GraphQL request body.
type GraphQLQuery struct {
	Query     string    `json:"query"`
	Variables Variables `json:"variables"`
}

// Variables represents the variables for the GraphQL query.
type Variables struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// GitHubGraphQLResponse represents the top-level structure of the GitHub GraphQL API response.
type GitHubGraphQLResponse struct {
	Data struct {
		User *struct { // user が null になる可能性があるのでポインタにする
			ContributionsCollection *struct {
				ContributionCalendar *struct {
					Weeks []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
							ContributionLevel string `json:"contributionLevel"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// GitHubService reads contributions straight from the GitHub API.
type GitHubService struct {
	client *github.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewGitHubService creates a new instance of GitHubService. The GraphQL
// endpoint requires a token; without one only the user lookup works.
func NewGitHubService(ctx context.Context, githubToken string, logger *zap.Logger) *GitHubService {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if githubToken != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: githubToken}))
		httpClient.Timeout = 30 * time.Second
	} else {
		logger.Warn("GitHub Personal Access Token が設定されていません。GraphQL API は利用できません。")
	}
	return &GitHubService{
		client: github.NewClient(httpClient),
		logger: logger,
		now:    time.Now,
	}
}

// SetBaseURL points the client at a different API root (GitHub Enterprise, tests).
func (s *GitHubService) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("ベースURLのパースに失敗しました: %w", err)
	}
	s.client.BaseURL = u
	return nil
}

// FetchContributions implements Provider. The cache token is not needed by
// GitHub and is ignored.
func (s *GitHubService) FetchContributions(ctx context.Context, username, _ string) ([]models.ContributionRecord, error) {
	user, _, err := s.client.Users.Get(ctx, username)
	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return nil, fmt.Errorf("%w: ユーザー情報の取得に失敗しました: %v", ErrUpstream, err)
	}
	login := user.GetLogin()
	if login == "" {
		login = username
	}

	endDate := s.now().UTC()
	startDate := endDate.AddDate(-1, 0, -7)
	s.logger.Info("GitHub contributions request",
		zap.String("username", login),
		zap.String("from", startDate.Format(models.DateLayout)),
		zap.String("to", endDate.Format(models.DateLayout)))

	req, err := s.client.NewRequest(http.MethodPost, "graphql", GraphQLQuery{
		Query: contributionCalendarQuery,
		Variables: Variables{
			Name: login,
			From: startDate.Format(time.RFC3339),
			To:   endDate.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GraphQLリクエストの作成に失敗しました: %v", ErrUpstream, err)
	}

	var githubResp GitHubGraphQLResponse
	if _, err := s.client.Do(ctx, req, &githubResp); err != nil {
		return nil, fmt.Errorf("%w: GraphQLリクエストに失敗しました: %v", ErrUpstream, err)
	}

	// GraphQLエラーがある場合
	if len(githubResp.Errors) > 0 {
		msgs := make([]string, 0, len(githubResp.Errors))
		for _, e := range githubResp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("%w: GraphQLエラー: %s", ErrUpstream, strings.Join(msgs, "; "))
	}

	u := githubResp.Data.User
	if u == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, login)
	}
	if u.ContributionsCollection == nil || u.ContributionsCollection.ContributionCalendar == nil {
		s.logger.Info("contribution calendar is empty", zap.String("username", login))
		return []models.ContributionRecord{}, nil
	}

	var records []models.ContributionRecord
	for _, week := range u.ContributionsCollection.ContributionCalendar.Weeks {
		for _, d := range week.ContributionDays {
			records = append(records, models.ContributionRecord{
				Date:      models.DateKey(d.Date),
				Count:     d.ContributionCount,
				Intensity: contributionLevels[d.ContributionLevel],
			})
		}
	}

	s.logger.Info("GitHub contributions fetched", zap.String("username", login), zap.Int("records", len(records)))
	return records, nil
}
