package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printledger/internal/core/entity"
	"printledger/internal/core/id"
	"printledger/internal/domain"
	"printledger/internal/infrastructure/http/v1/dto"
)

// CatalogHandler provides generic HTTP handlers for catalog entities.
type CatalogHandler[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    *domain.CatalogService[T]
	entityName string

	mapCreateDTO func(dto CreateDTO) (T, error)
	mapUpdateDTO func(dto UpdateDTO, existing T) T
	branchOf     func(entity T) id.ID
}

// CatalogHandlerConfig configures the catalog handler.
type CatalogHandlerConfig[T entity.Validatable, CreateDTO any, UpdateDTO any] struct {
	Service    *domain.CatalogService[T]
	EntityName string

	MapCreateDTO func(dto CreateDTO) (T, error)
	MapUpdateDTO func(dto UpdateDTO, existing T) T

	// BranchOf reports the entity's branch for scope checks;
	// nil for chain-wide catalogs.
	BranchOf func(entity T) id.ID
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler[T entity.Validatable, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg CatalogHandlerConfig[T, CreateDTO, UpdateDTO],
) *CatalogHandler[T, CreateDTO, UpdateDTO] {
	return &CatalogHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
		branchOf:     cfg.BranchOf,
	}
}

// checkScope verifies the caller may touch this entity's branch.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) checkScope(c *gin.Context, entity T) bool {
	if h.branchOf == nil {
		return true
	}
	_, ok := h.BranchScope(c, h.branchOf(entity).String())
	return ok
}

// List handles GET /{entity} - list with filtering and pagination.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "name")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"
	filter.OnlyActive = c.Query("onlyActive") == "true"

	if h.branchOf != nil {
		branchID, ok := h.OptionalBranchScope(c, c.Query("branchId"))
		if !ok {
			return
		}
		if !id.IsNil(branchID) {
			filter.BranchID = &branchID
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /{entity}/:id - get single entity.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	entity, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !h.checkScope(c, entity) {
		return
	}

	c.JSON(http.StatusOK, entity)
}

// Create handles POST /{entity} - create new entity.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.mapCreateDTO(req)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !h.checkScope(c, entity) {
		return
	}

	if err := h.service.Create(ctx, entity); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity)
}

// Update handles PUT /{entity}/:id - update existing entity.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !h.checkScope(c, existing) {
		return
	}

	entity := h.mapUpdateDTO(req, existing)
	if err := h.service.Update(ctx, entity); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

// SetDeletionMark handles POST /{entity}/:id/deletion-mark.
func (h *CatalogHandler[T, CreateDTO, UpdateDTO]) SetDeletionMark(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	existing, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !h.checkScope(c, existing) {
		return
	}

	marked := c.DefaultQuery("marked", "true") == "true"
	if err := h.service.SetDeletionMark(ctx, entityID, marked); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, h.entityName+" deletion mark updated")
}
