package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// likeEscaper makes wildcard characters in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ErrInvalidQuery is returned for list options the repository refuses to
// translate into SQL (unknown sort field, bad direction).
var ErrInvalidQuery = errors.New("invalid query")

// Store is the per-entity persistence contract the services depend on.
type Store[T any] interface {
	FindUnique(ctx context.Context, id uint) (*T, error)
	FindFirst(ctx context.Context, f Filter) (*T, error)
	FindMany(ctx context.Context, opts ListOptions) (Page[T], error)
	FindAll(ctx context.Context, f Filter, sortBy, sortOrder string) ([]T, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id uint, changes map[string]any) (*T, error)
	UpdateWhere(ctx context.Context, f Filter, changes map[string]any) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// Filter combines equality, exclusion and null checks with a free-text
// search. Keys are column names.
type Filter struct {
	Equals  map[string]any
	Exclude map[string]any
	IsNull  []string
	NotNull []string
	Search  string
}

type ListOptions struct {
	Filter
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// Spec describes how an entity is searched and sorted. SortFields maps the
// public field name to its column.
type Spec struct {
	SearchColumns []string
	SortFields    map[string]string
	DefaultSort   string
	DefaultOrder  string
}

type Repository[T any] struct {
	db   *gorm.DB
	spec Spec
}

func NewRepository[T any](gdb *gorm.DB, spec Spec) *Repository[T] {
	return &Repository[T]{db: gdb, spec: spec}
}

func (r *Repository[T]) FindUnique(ctx context.Context, id uint) (*T, error) {
	entity := new(T)
	if err := r.db.WithContext(ctx).First(entity, id).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *Repository[T]) FindFirst(ctx context.Context, f Filter) (*T, error) {
	entity := new(T)
	err := r.apply(r.db.WithContext(ctx).Model(new(T)), f).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Take(entity).Error
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *Repository[T]) FindMany(ctx context.Context, opts ListOptions) (Page[T], error) {
	page, limit := normalizePage(opts.Page, opts.Limit)
	order, err := r.order(opts.SortBy, opts.SortOrder)
	if err != nil {
		return Page[T]{}, err
	}

	var total int64
	if err := r.apply(r.db.WithContext(ctx).Model(new(T)), opts.Filter).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	items := make([]T, 0, limit)
	q := r.apply(r.db.WithContext(ctx).Model(new(T)), opts.Filter)
	for _, o := range order {
		q = q.Order(o)
	}
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}, nil
}

func (r *Repository[T]) FindAll(ctx context.Context, f Filter, sortBy, sortOrder string) ([]T, error) {
	order, err := r.order(sortBy, sortOrder)
	if err != nil {
		return nil, err
	}
	items := []T{}
	q := r.apply(r.db.WithContext(ctx).Model(new(T)), f)
	for _, o := range order {
		q = q.Order(o)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository[T]) Count(ctx context.Context, f Filter) (int64, error) {
	var total int64
	err := r.apply(r.db.WithContext(ctx).Model(new(T)), f).Count(&total).Error
	return total, err
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Update writes only the given columns and returns the fresh row.
func (r *Repository[T]) Update(ctx context.Context, id uint, changes map[string]any) (*T, error) {
	if len(changes) > 0 {
		res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindUnique(ctx, id)
}

// UpdateWhere writes the columns on every row matching f and reports how many
// rows changed.
func (r *Repository[T]) UpdateWhere(ctx context.Context, f Filter, changes map[string]any) (int64, error) {
	if len(changes) == 0 {
		return 0, nil
	}
	res := r.apply(r.db.WithContext(ctx).Model(new(T)), f).Updates(changes)
	return res.RowsAffected, res.Error
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository[T]) apply(q *gorm.DB, f Filter) *gorm.DB {
	for _, col := range sortedKeys(f.Equals) {
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: f.Equals[col]})
	}
	for _, col := range sortedKeys(f.Exclude) {
		q = q.Where(clause.Neq{Column: clause.Column{Name: col}, Value: f.Exclude[col]})
	}
	for _, col := range f.IsNull {
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: nil})
	}
	for _, col := range f.NotNull {
		q = q.Where(clause.Neq{Column: clause.Column{Name: col}, Value: nil})
	}

	term := strings.TrimSpace(f.Search)
	if term != "" && len(r.spec.SearchColumns) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		parts := make([]string, 0, len(r.spec.SearchColumns))
		args := make([]any, 0, len(r.spec.SearchColumns))
		for _, col := range r.spec.SearchColumns {
			parts = append(parts, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col))
			args = append(args, pattern)
		}
		q = q.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
	return q
}

// order resolves the public sort field and appends id as a tie-breaker so
// consecutive pages never overlap.
func (r *Repository[T]) order(sortBy, sortOrder string) ([]clause.OrderByColumn, error) {
	if sortBy == "" {
		sortBy = r.spec.DefaultSort
	}
	if sortOrder == "" {
		sortOrder = r.spec.DefaultOrder
	}

	var desc bool
	switch strings.ToLower(sortOrder) {
	case "", "asc":
	case "desc":
		desc = true
	default:
		return nil, fmt.Errorf("%w: sortOrder must be asc or desc", ErrInvalidQuery)
	}

	if sortBy == "" {
		return []clause.OrderByColumn{{Column: clause.Column{Name: "id"}, Desc: desc}}, nil
	}
	col, ok := r.spec.SortFields[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: cannot sort by %q", ErrInvalidQuery, sortBy)
	}

	order := []clause.OrderByColumn{{Column: clause.Column{Name: col}, Desc: desc}}
	if col != "id" {
		order = append(order, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return order, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
