package store

import (
	"context"

	"backoffice/api"
	"backoffice/domain/shared"
	"backoffice/domain/user"
)

type UserAPI interface {
	List(ctx context.Context, params api.ListParams, filter user.ListFilter) (shared.Page[user.User], error)
}

// Users Read-only customer list
type Users struct {
	api      UserAPI
	list     *List[user.User]
	pageSize int
	reporter
}

func NewUsers(a UserAPI, notifier Notifier, pageSize int) *Users {
	return &Users{
		api:      a,
		list:     NewList[user.User](),
		pageSize: pageSize,
		reporter: reporter{notifier: notifier},
	}
}

func (s *Users) List() *List[user.User] { return s.list }

func (s *Users) Fetch(ctx context.Context, params api.ListParams, filter user.ListFilter) error {
	params = withPageSize(params, s.pageSize)
	return s.failure(s.list.Fetch(ctx, func(ctx context.Context) (shared.Page[user.User], error) {
		return s.api.List(ctx, params, filter)
	}))
}
