package handler

import (
	"github.com/storefront/dashboard-api/internal/core/domain"
)

const (
	lastOrderDateLayout   = "2 January 2006"
	recentOrderDateLayout = "2006-01-02"
)

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
	}
}

// toUserListItems never carries credentials.
func toUserListItems(users []*domain.User) []userListItem {
	out := make([]userListItem, 0, len(users))
	for _, u := range users {
		out = append(out, userListItem{ID: u.ID, Username: u.Username, Email: u.Email, Bio: u.Bio})
	}
	return out
}

func toLastOrderItems(views []*domain.OrderView) []lastOrderItem {
	out := make([]lastOrderItem, 0, len(views))
	for _, v := range views {
		out = append(out, lastOrderItem{
			CustomerID:  v.CustomerID,
			ProductName: v.ProductName,
			Date:        v.CreatedAt.Format(lastOrderDateLayout),
			Status:      string(v.Status),
		})
	}
	return out
}

func toRecentOrderItems(views []*domain.OrderView) []recentOrderItem {
	out := make([]recentOrderItem, 0, len(views))
	for _, v := range views {
		out = append(out, recentOrderItem{
			ProductName: v.ProductName,
			Price:       v.Price,
			Username:    v.Username,
			CreatedAt:   v.CreatedAt.Format(recentOrderDateLayout),
		})
	}
	return out
}

func toTopProductItems(top []*domain.TopProduct) []topProductItem {
	out := make([]topProductItem, 0, len(top))
	for _, t := range top {
		out = append(out, topProductItem{
			ID:        t.ID,
			Name:      t.Name,
			Price:     t.Price,
			User:      t.OwnerID,
			TotalSold: t.TotalSold,
		})
	}
	return out
}
