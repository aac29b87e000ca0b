package search

import (
	"fmt"
	"log"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"lokalpulse.com/gbpdashboard/internal/entity"
	"lokalpulse.com/gbpdashboard/internal/modules/task/engine"
)

const (
	locationsIndex = "locations"
	templatesIndex = "templates"
)

// MeiliSearchService indexes tenant locations and the task template catalog.
// Search tokens are tenant-scoped: a token only matches the owner's
// locations, while the template catalog is searchable by everyone.
type MeiliSearchService interface {
	IndexLocation(location *entity.Location) error
	DeleteLocation(id string) error
	IndexTemplates(templates []engine.Template) error
	GenerateSearchToken(userID string) (string, error)
}

type meiliSearchService struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
}

func NewMeiliSearchService(client meilisearch.ServiceManager) MeiliSearchService {
	s := &meiliSearchService{client: client}
	s.initIndexes()
	s.initSigningKey()
	return s
}

func (s *meiliSearchService) initIndexes() {
	locFilterable := []any{"user_id", "primary_category"}
	if _, err := s.client.Index(locationsIndex).UpdateFilterableAttributes(&locFilterable); err != nil {
		log.Printf("Failed to update locations filterable attributes: %v", err)
	}
	locSortable := []string{"created_at"}
	if _, err := s.client.Index(locationsIndex).UpdateSortableAttributes(&locSortable); err != nil {
		log.Printf("Failed to update locations sortable attributes: %v", err)
	}

	tplFilterable := []any{"category", "type", "priority"}
	if _, err := s.client.Index(templatesIndex).UpdateFilterableAttributes(&tplFilterable); err != nil {
		log.Printf("Failed to update templates filterable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

func (s *meiliSearchService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{Limit: 20})
	if err != nil {
		log.Printf("Failed to get meilisearch keys: %v", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == "TenantTokenSigner" {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			log.Println("Found existing Meilisearch signing key")
			return
		}
	}

	expiry := time.Now().AddDate(100, 0, 0)
	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign tenant tokens",
		Name:        "TenantTokenSigner",
		Actions:     []string{"search"},
		Indexes:     []string{locationsIndex, templatesIndex},
		ExpiresAt:   expiry,
	})
	if err != nil {
		log.Printf("Failed to create signing key: %v", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
	log.Println("Created new Meilisearch signing key")
}

type meiliLocationDoc struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	Address         string `json:"address"`
	PrimaryCategory string `json:"primary_category"`
	CreatedAt       int64  `json:"created_at"`
}

type meiliTemplateDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Points      int    `json:"points"`
}

func (s *meiliSearchService) IndexLocation(location *entity.Location) error {
	doc := meiliLocationDoc{
		ID:              location.ID.String(),
		UserID:          location.UserID.String(),
		Name:            location.Name,
		Address:         location.Address,
		PrimaryCategory: location.PrimaryCategory,
		CreatedAt:       location.CreatedAt.Unix(),
	}

	task, err := s.client.Index(locationsIndex).AddDocuments([]meiliLocationDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed location %s, task id: %d", location.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeleteLocation(id string) error {
	_, err := s.client.Index(locationsIndex).DeleteDocument(id)
	return err
}

// IndexTemplates replaces the template index with the loaded catalog.
// Called once at startup after the catalog parse.
func (s *meiliSearchService) IndexTemplates(templates []engine.Template) error {
	docs := make([]meiliTemplateDoc, 0, len(templates))
	for _, tpl := range templates {
		docs = append(docs, meiliTemplateDoc{
			ID:          tpl.ID,
			Title:       tpl.Title,
			Description: tpl.Description,
			Type:        tpl.Type,
			Category:    tpl.Category,
			Priority:    string(tpl.Priority),
			Points:      tpl.Points,
		})
	}

	task, err := s.client.Index(templatesIndex).AddDocuments(docs, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed %d templates, task id: %d", len(docs), task.TaskUID)
	return nil
}

func (s *meiliSearchService) GenerateSearchToken(userID string) (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	searchRules := map[string]any{
		locationsIndex: map[string]any{
			"filter": fmt.Sprintf("user_id = %q", userID),
		},
		templatesIndex: map[string]any{},
	}

	token, err := s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func strPtr(s string) *string {
	return &s
}
