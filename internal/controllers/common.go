package controllers

import (
	"context"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/pkg/utils"
)

// actorFromCtx assembles the acting user from the request context populated
// by the auth middleware.
func actorFromCtx(ctx context.Context) (dto.Actor, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return dto.Actor{}, err
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return dto.Actor{}, err
	}
	return dto.Actor{ID: userID, Role: role}, nil
}
