package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"tradehub/db"
	"tradehub/models"
)

type CategoryService struct {
	categories db.Store[models.Category]
}

func NewCategoryService(categories db.Store[models.Category]) *CategoryService {
	return &CategoryService{categories: categories}
}

type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"max=500"`
	ParentID    *uint  `json:"parentId"`
	IsActive    *bool  `json:"isActive"`
	SortOrder   int    `json:"sortOrder" validate:"min=0"`
}

type UpdateCategoryInput struct {
	Name        models.Optional[string] `json:"name"`
	Description models.Optional[string] `json:"description"`
	Image       models.Optional[string] `json:"image"`
	ParentID    models.Optional[uint]   `json:"parentId"`
	IsActive    models.Optional[bool]   `json:"isActive"`
	SortOrder   models.Optional[int]    `json:"sortOrder"`
}

type CategoryListParams struct {
	ListParams
	ParentID *uint
	TopLevel bool
}

type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	ParentID    *uint     `json:"parentId"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryNode is a public category with its active subcategories.
type CategoryNode struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Image         string         `json:"image"`
	SortOrder     int            `json:"sortOrder"`
	Subcategories []CategoryNode `json:"subcategories"`
}

func toCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := Validate(in); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		if err := s.ensureParent(ctx, *in.ParentID, 0); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		ParentID:    in.ParentID,
		IsActive:    true,
		SortOrder:   in.SortOrder,
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, storeError(err, "category")
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) List(ctx context.Context, p CategoryListParams) (*ListResult[CategoryResponse], error) {
	f := db.Filter{}
	switch {
	case p.ParentID != nil:
		f.Equals = map[string]any{"parent_id": *p.ParentID}
	case p.TopLevel:
		f.IsNull = []string{"parent_id"}
	}
	page, err := s.categories.FindMany(ctx, p.options(f))
	if err != nil {
		return nil, storeError(err, "category")
	}
	return mapPage(page, toCategoryResponse), nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*CategoryResponse, error) {
	category, err := s.categories.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "category")
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

// Tree returns the active top-level categories with their active children,
// ordered by sortOrder then name. Children of inactive parents are hidden.
func (s *CategoryService) Tree(ctx context.Context) ([]CategoryNode, error) {
	all, err := s.categories.FindAll(ctx, db.Filter{Equals: map[string]any{"is_active": true}}, "sortOrder", "asc")
	if err != nil {
		return nil, storeError(err, "category")
	}

	children := map[uint][]CategoryNode{}
	for i := range all {
		if c := &all[i]; c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], categoryNode(c))
		}
	}

	tree := []CategoryNode{}
	for i := range all {
		c := &all[i]
		if c.ParentID != nil {
			continue
		}
		node := categoryNode(c)
		if subs, ok := children[c.ID]; ok {
			node.Subcategories = subs
		}
		tree = append(tree, node)
	}
	sortNodes(tree)
	for i := range tree {
		sortNodes(tree[i].Subcategories)
	}
	return tree, nil
}

func categoryNode(c *models.Category) CategoryNode {
	return CategoryNode{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Image:         c.Image,
		SortOrder:     c.SortOrder,
		Subcategories: []CategoryNode{},
	}
}

func sortNodes(nodes []CategoryNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return nodes[i].Name < nodes[j].Name
	})
}

func (s *CategoryService) Update(ctx context.Context, id uint, in UpdateCategoryInput) (*CategoryResponse, error) {
	current, err := s.categories.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "category")
	}

	changes := map[string]any{}
	if in.Name.Set {
		name := strings.TrimSpace(in.Name.Value)
		if err := validateField("name", name, "required,max=100"); err != nil {
			return nil, err
		}
		if name != current.Name {
			if err := s.ensureNameFree(ctx, name, id); err != nil {
				return nil, err
			}
		}
		changes["name"] = name
	}
	if in.Description.Set {
		if err := validateField("description", in.Description.Value, "max=2000"); err != nil {
			return nil, err
		}
		changes["description"] = in.Description.Value
	}
	if in.Image.Set {
		if err := validateField("image", in.Image.Value, "max=500"); err != nil {
			return nil, err
		}
		changes["image"] = in.Image.Value
	}
	if in.ParentID.Set {
		if in.ParentID.Null {
			changes["parent_id"] = nil
		} else {
			if err := s.ensureParent(ctx, in.ParentID.Value, id); err != nil {
				return nil, err
			}
			changes["parent_id"] = in.ParentID.Value
		}
	}
	if in.IsActive.Set {
		if in.IsActive.Null {
			return nil, Validation("isActive cannot be null")
		}
		changes["is_active"] = in.IsActive.Value
	}
	if in.SortOrder.Set {
		if in.SortOrder.Value < 0 {
			return nil, Validation("sortOrder must be at least 0")
		}
		changes["sort_order"] = in.SortOrder.Value
	}

	updated, err := s.categories.Update(ctx, id, changes)
	if err != nil {
		return nil, storeError(err, "category")
	}
	resp := toCategoryResponse(updated)
	return &resp, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.categories.FindUnique(ctx, id); err != nil {
		return storeError(err, "category")
	}
	// subcategories of a deleted category become top level
	_, err := s.categories.UpdateWhere(ctx,
		db.Filter{Equals: map[string]any{"parent_id": id}},
		map[string]any{"parent_id": nil})
	if err != nil {
		return storeError(err, "category")
	}
	return storeError(s.categories.Delete(ctx, id), "category")
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	f := db.Filter{Equals: map[string]any{"name": name}}
	if selfID != 0 {
		f.Exclude = map[string]any{"id": selfID}
	}
	n, err := s.categories.Count(ctx, f)
	if err != nil {
		return storeError(err, "category")
	}
	if n > 0 {
		return Conflict("category with name %q already exists", name)
	}
	return nil
}

func (s *CategoryService) ensureParent(ctx context.Context, parentID, selfID uint) error {
	if parentID == selfID {
		return Validation("a category cannot be its own parent")
	}
	parent, err := s.categories.FindUnique(ctx, parentID)
	if err != nil {
		if KindOf(storeError(err, "parent category")) == KindNotFound {
			return NotFound("parent category %d not found", parentID)
		}
		return storeError(err, "category")
	}
	// categories nest one level deep
	if parent.ParentID != nil {
		return Validation("parent category %d is itself a subcategory", parentID)
	}
	if selfID != 0 {
		n, err := s.categories.Count(ctx, db.Filter{Equals: map[string]any{"parent_id": selfID}})
		if err != nil {
			return storeError(err, "category")
		}
		if n > 0 {
			return Validation("a category with subcategories cannot become a subcategory")
		}
	}
	return nil
}
