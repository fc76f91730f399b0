package service

import (
	"log"

	"anoa.com/yamdbreview/internal/model"
	"github.com/meilisearch/meilisearch-go"
)

// SearchService keeps the titles index in Meilisearch in sync so a
// frontend can query it directly. Indexing is best-effort and the
// whole service is optional.
type SearchService interface {
	IndexTitle(title *model.Title, rating *float64) error
	DeleteTitle(id string) error
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterableAttrs := []string{"category", "genres", "year"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index("titles").UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update titles filterable attributes: %v", err)
	}

	sortableAttrs := []string{"year", "rating"}
	if _, err := s.client.Index("titles").UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update titles sortable attributes: %v", err)
	}
}

type meiliTitleDoc struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genres"`
	Rating      *float64 `json:"rating"`
}

func (s *meiliSearchService) IndexTitle(title *model.Title, rating *float64) error {
	doc := meiliTitleDoc{
		ID:     title.ID.String(),
		Name:   title.Name,
		Year:   title.Year,
		Rating: rating,
	}
	if title.Description != nil {
		doc.Description = *title.Description
	}
	if title.Category != nil {
		doc.Category = title.Category.Slug
	}
	for _, g := range title.Genres {
		doc.Genres = append(doc.Genres, g.Slug)
	}

	task, err := s.client.Index("titles").AddDocuments([]meiliTitleDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed title %s, task id: %d", title.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeleteTitle(id string) error {
	_, err := s.client.Index("titles").DeleteDocument(id)
	return err
}

// noopSearchService is used when MEILISEARCH_HOST is not configured.
type noopSearchService struct{}

func NewNoopSearchService() SearchService {
	return &noopSearchService{}
}

func (s *noopSearchService) IndexTitle(*model.Title, *float64) error { return nil }
func (s *noopSearchService) DeleteTitle(string) error                { return nil }

func strPtr(s string) *string {
	return &s
}
