package unitofwork

import (
	"context"
	"fmt"

	"skill-exchange-ai/internal/repository/contract"
	"skill-exchange-ai/internal/repository/memory"
)

type MemoryRepositoryFactory struct {
	store *memory.Store
}

func NewMemoryRepositoryFactory(store *memory.Store) RepositoryFactory {
	return &MemoryRepositoryFactory{store: store}
}

func (f *MemoryRepositoryFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return &MemoryUnitOfWork{store: f.store}
}

func (f *MemoryRepositoryFactory) Ping(ctx context.Context) error {
	return ctx.Err()
}

// MemoryUnitOfWork writes through immediately; Begin only tracks nesting.
type MemoryUnitOfWork struct {
	store  *memory.Store
	active bool
}

func (u *MemoryUnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}
	u.active = true
	return nil
}

func (u *MemoryUnitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	u.active = false
	return nil
}

func (u *MemoryUnitOfWork) Rollback() error {
	if !u.active {
		return fmt.Errorf("no transaction to rollback")
	}
	u.active = false
	return nil
}

func (u *MemoryUnitOfWork) ConversationRepository() contract.ConversationRepository {
	return memory.NewConversationRepository(u.store)
}

func (u *MemoryUnitOfWork) MessageRepository() contract.MessageRepository {
	return memory.NewMessageRepository(u.store)
}

func (u *MemoryUnitOfWork) GroupClassificationRepository() contract.GroupClassificationRepository {
	return memory.NewGroupClassificationRepository(u.store)
}

func (u *MemoryUnitOfWork) UserClassificationRepository() contract.UserClassificationRepository {
	return memory.NewUserClassificationRepository(u.store)
}

func (u *MemoryUnitOfWork) LexiconRepository() contract.LexiconRepository {
	return memory.NewLexiconRepository(u.store)
}

func (u *MemoryUnitOfWork) FeedbackRepository() contract.FeedbackRepository {
	return memory.NewFeedbackRepository(u.store)
}

func (u *MemoryUnitOfWork) CourseEmbeddingRepository() contract.CourseEmbeddingRepository {
	return memory.NewCourseEmbeddingRepository(u.store)
}
