package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/internal/repository/contract"
	"skill-exchange-ai/internal/repository/memory"
	"skill-exchange-ai/internal/repository/unitofwork"
	"skill-exchange-ai/pkg/catalog"
	"skill-exchange-ai/pkg/classifier"
	"skill-exchange-ai/pkg/recommend"

	"github.com/stretchr/testify/require"
)

var testVocab = []string{"python", "sql", "data", "cooking", "baking", "guitar", "music"}

// vocabEmbedder counts vocabulary words so vectors are deterministic and comparable.
type vocabEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (e *vocabEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	vector := make([]float64, len(testVocab))
	for _, word := range strings.Fields(text) {
		for i, v := range testVocab {
			if word == v {
				vector[i]++
			}
		}
	}
	return vector, nil
}

func (e *vocabEmbedder) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *vocabEmbedder) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = 0
}

func (e *vocabEmbedder) Fail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

type recordedEvent struct {
	kind     string
	userId   string
	groupIds []string
	message  *entity.Message
}

type recordingEvents struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingEvents) PublishMessageCreated(ctx context.Context, message *entity.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{kind: "message", message: message})
}

func (r *recordingEvents) PublishGroupsRecommended(ctx context.Context, userId string, groupIds []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{kind: "recommended", userId: userId, groupIds: groupIds})
}

type pingFailingFactory struct {
	unitofwork.RepositoryFactory
	err error
}

func (f *pingFailingFactory) Ping(ctx context.Context) error {
	return f.err
}

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	uowFactory unitofwork.RepositoryFactory
	embedder   *vocabEmbedder
	catalogs   *catalog.Holder
	now        time.Time
	events     *recordingEvents

	classification IClassificationService
	health         IHealthService
	recommendation IRecommendationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:      context.Background(),
		store:    memory.NewStore(),
		embedder: &vocabEmbedder{},
		catalogs: catalog.NewHolder(),
		now:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		events:   &recordingEvents{},
	}
	f.uowFactory = unitofwork.NewMemoryRepositoryFactory(f.store)

	rows := []catalog.Row{
		{Course: "Data Science", Skills: `{"Python","SQL","Data"}`},
		{Course: "Pastry Basics", Skills: `{"Cooking","Baking"}`},
		{Course: "Guitar for Beginners", Skills: `{"Guitar","Music"}`},
	}
	cat, _, err := catalog.Build(f.ctx, rows, f.embedder, catalog.WithDimension(len(testVocab)))
	require.NoError(t, err)
	f.catalogs.Set(cat)
	f.embedder.Reset()

	f.wire(f.uowFactory)
	return f
}

func (f *fixture) wire(uowFactory unitofwork.RepositoryFactory) {
	log := logger.NewNopLogger()
	f.classification = NewClassificationService(
		uowFactory,
		f.catalogs,
		classifier.New(f.embedder, classifier.Options{}),
		log,
		ClassificationOptions{TTL: time.Hour, Clock: func() time.Time { return f.now }},
	)
	f.health = NewHealthService(uowFactory, f.catalogs)
	f.recommendation = NewRecommendationService(
		uowFactory,
		f.health,
		f.classification,
		recommend.NewRanker(f.embedder, recommend.Options{}),
		f.events,
		log,
	)
}

func (f *fixture) addConversation(t *testing.T, c *entity.Conversation) {
	t.Helper()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = f.now
	}
	require.NoError(t, f.uowFactory.NewUnitOfWork(f.ctx).ConversationRepository().Create(f.ctx, c))
}

func (f *fixture) addMessage(t *testing.T, conversationId, senderId, content string) {
	t.Helper()
	f.now = f.now.Add(time.Second)
	require.NoError(t, f.uowFactory.NewUnitOfWork(f.ctx).MessageRepository().Create(f.ctx, &entity.Message{
		ConversationId: conversationId,
		SenderId:       senderId,
		Content:        content,
		CreatedAt:      f.now,
	}))
}

// faultyFactory injects repository failures into an otherwise working store.
type faultyFactory struct {
	unitofwork.RepositoryFactory
	lexiconErr error
	messageErr error
}

func (f *faultyFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &faultyUnitOfWork{UnitOfWork: f.RepositoryFactory.NewUnitOfWork(ctx), factory: f}
}

type faultyUnitOfWork struct {
	unitofwork.UnitOfWork
	factory *faultyFactory
}

func (u *faultyUnitOfWork) LexiconRepository() contract.LexiconRepository {
	if u.factory.lexiconErr == nil {
		return u.UnitOfWork.LexiconRepository()
	}
	return &faultyLexicon{LexiconRepository: u.UnitOfWork.LexiconRepository(), err: u.factory.lexiconErr}
}

func (u *faultyUnitOfWork) MessageRepository() contract.MessageRepository {
	if u.factory.messageErr == nil {
		return u.UnitOfWork.MessageRepository()
	}
	return &faultyMessages{MessageRepository: u.UnitOfWork.MessageRepository(), err: u.factory.messageErr}
}

type faultyLexicon struct {
	contract.LexiconRepository
	err error
}

func (r *faultyLexicon) FindByWord(ctx context.Context, word string) ([]*entity.LexiconEntry, error) {
	return nil, r.err
}

type faultyMessages struct {
	contract.MessageRepository
	err error
}

func (r *faultyMessages) Create(ctx context.Context, message *entity.Message) error {
	return r.err
}

func seedLexicon(t *testing.T, f *fixture, entries ...*entity.LexiconEntry) {
	t.Helper()
	repo := f.uowFactory.NewUnitOfWork(f.ctx).LexiconRepository()
	for _, e := range entries {
		require.NoError(t, repo.Upsert(f.ctx, e))
	}
}
