package postgresadapter

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"plume/contexts/content-sharing/publishing-service/ports"
)

// Keyset pagination: a cursor is the id of the last-seen record, resolved
// to its sort-key value so the page starts strictly after it under the
// effective ordering. Ties on the sort column break by id ascending, the
// same total order the memory adapter produces.

type sortSpec struct {
	column   string
	idColumn string
	desc     bool
}

func (s sortSpec) orderClause() string {
	direction := "ASC"
	if s.desc {
		direction = "DESC"
	}
	return s.column + " " + direction + ", " + s.idColumn + " ASC"
}

func (s sortSpec) keysetClause() string {
	op := ">"
	if s.desc {
		op = "<"
	}
	return "(" + s.column + " " + op + " ?) OR (" + s.column + " = ? AND " + s.idColumn + " > ?)"
}

func userSort(params ports.ListParams) sortSpec {
	column := "name"
	switch params.SortField {
	case "email", "age", "created_at", "updated_at":
		column = params.SortField
	}
	desc := params.SortOrder == ports.SortDesc
	if params.SortField == "" {
		desc = false
	}
	return sortSpec{column: column, idColumn: "id", desc: desc}
}

func postSort(params ports.ListParams) sortSpec {
	column := "updated_at"
	switch params.SortField {
	case "title", "body", "created_at":
		column = params.SortField
	}
	desc := params.SortOrder == ports.SortDesc
	if params.SortField == "" {
		desc = true
	}
	return sortSpec{column: column, idColumn: "id", desc: desc}
}

func commentSort(params ports.ListParams) sortSpec {
	column := "comments.updated_at"
	switch params.SortField {
	case "text":
		column = "comments.text"
	case "created_at":
		column = "comments.created_at"
	}
	desc := params.SortOrder == ports.SortDesc
	if params.SortField == "" {
		desc = true
	}
	return sortSpec{column: column, idColumn: "comments.id", desc: desc}
}

// applyUserPagination returns a nil tx when the cursor id does not resolve;
// callers translate that into an empty page.
func (r *Repository) applyUserPagination(ctx context.Context, tx *gorm.DB, params ports.ListParams, spec sortSpec) (*gorm.DB, error) {
	tx = tx.Order(spec.orderClause())
	if params.After != "" {
		var cursor userModel
		err := r.db.WithContext(ctx).Where("id = ?", params.After).First(&cursor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		value := userSortValue(cursor, spec.column)
		tx = tx.Where(spec.keysetClause(), value, value, cursor.ID)
	} else if params.Skip > 0 {
		tx = tx.Offset(params.Skip)
	}
	return applyLimit(tx, params), nil
}

func (r *Repository) applyPostPagination(ctx context.Context, tx *gorm.DB, params ports.ListParams, spec sortSpec) (*gorm.DB, error) {
	tx = tx.Order(spec.orderClause())
	if params.After != "" {
		var cursor postModel
		err := r.db.WithContext(ctx).Where("id = ?", params.After).First(&cursor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		value := postSortValue(cursor, spec.column)
		tx = tx.Where(spec.keysetClause(), value, value, cursor.ID)
	} else if params.Skip > 0 {
		tx = tx.Offset(params.Skip)
	}
	return applyLimit(tx, params), nil
}

func (r *Repository) applyCommentPagination(ctx context.Context, tx *gorm.DB, params ports.ListParams, spec sortSpec) (*gorm.DB, error) {
	tx = tx.Order(spec.orderClause())
	if params.After != "" {
		var cursor commentModel
		err := r.db.WithContext(ctx).Where("id = ?", params.After).First(&cursor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		value := commentSortValue(cursor, spec.column)
		tx = tx.Where(spec.keysetClause(), value, value, cursor.ID)
	} else if params.Skip > 0 {
		tx = tx.Offset(params.Skip)
	}
	return applyLimit(tx, params), nil
}

func applyLimit(tx *gorm.DB, params ports.ListParams) *gorm.DB {
	if params.Take > 0 {
		tx = tx.Limit(params.Take)
	}
	return tx
}

func userSortValue(row userModel, column string) any {
	switch column {
	case "email":
		return row.Email
	case "age":
		return row.Age
	case "created_at":
		return row.CreatedAt
	case "updated_at":
		return row.UpdatedAt
	default:
		return row.Name
	}
}

func postSortValue(row postModel, column string) any {
	switch column {
	case "title":
		return row.Title
	case "body":
		return row.Body
	case "created_at":
		return row.CreatedAt
	default:
		return row.UpdatedAt
	}
}

func commentSortValue(row commentModel, column string) any {
	switch column {
	case "comments.text":
		return row.Text
	case "comments.created_at":
		return row.CreatedAt
	default:
		return row.UpdatedAt
	}
}
