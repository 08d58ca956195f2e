package services

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/taskhub/core/internal/domain/entities"
)

// In-memory repository fakes. They implement the ports interfaces with just
// enough behavior for the service tests: sequential ids, sentinel errors on
// missing rows, and injectable failures.

type fakeOrgRepo struct {
	orgs   map[int64]*entities.Organization
	nextID int64
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[int64]*entities.Organization)}
}

func (r *fakeOrgRepo) Create(_ context.Context, org *entities.Organization) error {
	r.nextID++
	org.ID = r.nextID
	cp := *org
	r.orgs[org.ID] = &cp
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id int64) (*entities.Organization, error) {
	org, ok := r.orgs[id]
	if !ok {
		return nil, entities.ErrOrganizationNotFound
	}
	cp := *org
	return &cp, nil
}

func (r *fakeOrgRepo) GetChildren(_ context.Context, parentID int64) ([]*entities.Organization, error) {
	var children []*entities.Organization
	for _, org := range r.orgs {
		if org.ParentID != nil && *org.ParentID == parentID {
			cp := *org
			children = append(children, &cp)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].ID < children[j].ID })
	return children, nil
}

func (r *fakeOrgRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.orgs[id]; !ok {
		return entities.ErrOrganizationNotFound
	}
	delete(r.orgs, id)
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return entities.ErrEmailTaken
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) ListByOrganization(_ context.Context, orgID int64) ([]*entities.User, error) {
	var users []*entities.User
	for _, u := range r.users {
		if u.OrganizationID == orgID {
			cp := *u
			users = append(users, &cp)
		}
	}
	return users, nil
}

type fakeTaskRepo struct {
	tasks  map[int64]*entities.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*entities.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *entities.Task) error {
	r.nextID++
	task.ID = r.nextID
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*entities.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

func (r *fakeTaskRepo) ListByOrganization(_ context.Context, orgID int64) ([]*entities.Task, error) {
	var tasks []*entities.Task
	for _, t := range r.tasks {
		if t.OrganizationID == orgID {
			cp := *t
			tasks = append(tasks, &cp)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *entities.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type fakeAuditRepo struct {
	entries   []*entities.AuditLog
	users     *fakeUserRepo
	appendErr error
	nextID    int64
}

func newFakeAuditRepo(users *fakeUserRepo) *fakeAuditRepo {
	return &fakeAuditRepo{users: users}
}

func (r *fakeAuditRepo) Append(_ context.Context, entry *entities.AuditLog) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.nextID++
	entry.ID = r.nextID
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeAuditRepo) ListByOrganization(_ context.Context, orgID int64, limit int) ([]*entities.AuditLog, error) {
	if r.users == nil {
		return nil, errors.New("no user store configured")
	}
	var result []*entities.AuditLog
	for i := len(r.entries) - 1; i >= 0 && len(result) < limit; i-- {
		entry := r.entries[i]
		user, ok := r.users.users[entry.UserID]
		if !ok || user.OrganizationID != orgID {
			continue
		}
		cp := *entry
		result = append(result, &cp)
	}
	return result, nil
}
