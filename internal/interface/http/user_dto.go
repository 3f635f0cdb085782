package handlers

import (
	"time"

	"github.com/oksasatya/go-ddd-user-service/internal/application"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/repository"
)

const defaultListLimit = 20

type createUserRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	FullName *string `json:"full_name"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required,userstatus"`
}

type listUsersQuery struct {
	Limit  *int `form:"limit"`
	Offset *int `form:"offset"`
}

type searchUsersQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type userListResponse struct {
	Users  []userResponse `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type searchHitResponse struct {
	ID       string  `json:"id"`
	Score    float64 `json:"score"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Status   string  `json:"status"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID().String(),
		Username:  u.Username().String(),
		Email:     u.Email().String(),
		FullName:  u.FullName(),
		Status:    u.Status().String(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func toUserListResponse(p *application.UserPage) userListResponse {
	users := make([]userResponse, 0, len(p.Users))
	for _, u := range p.Users {
		users = append(users, toUserResponse(u))
	}
	return userListResponse{Users: users, Total: p.Total, Limit: p.Limit, Offset: p.Offset}
}

func toSearchHitResponses(hits []repository.SearchHit) []searchHitResponse {
	out := make([]searchHitResponse, 0, len(hits))
	for _, h := range hits {
		out = append(out, searchHitResponse{
			ID:       h.ID.String(),
			Score:    h.Score,
			Username: h.Username,
			Email:    h.Email,
			FullName: h.FullName,
			Status:   h.Status.String(),
		})
	}
	return out
}

func (q listUsersQuery) values() (limit, offset int) {
	limit, offset = defaultListLimit, 0
	if q.Limit != nil {
		limit = *q.Limit
	}
	if q.Offset != nil {
		offset = *q.Offset
	}
	return limit, offset
}
