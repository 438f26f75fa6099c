package main

import (
	"context"
	"log"
	"time"

	"skill-exchange-ai/internal/config"
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/model"
	"skill-exchange-ai/internal/repository/unitofwork"
	"skill-exchange-ai/pkg/database"
)

type demoGroup struct {
	id           string
	name         string
	participants []string
	messages     []demoMessage
}

type demoMessage struct {
	sender  string
	content string
}

// demoGroups gives a fresh database enough conversation history for classification to find skills.
var demoGroups = []demoGroup{
	{
		id:           "demo-data-science",
		name:         "Data Science Circle",
		participants: []string{"demo-alice", "demo-bob"},
		messages: []demoMessage{
			{"demo-alice", "Has anyone cleaned a dataset with pandas before loading it into SQL?"},
			{"demo-bob", "Yes, I use Python notebooks for the data analysis and then export to Postgres."},
		},
	},
	{
		id:           "demo-web-dev",
		name:         "Web Builders",
		participants: []string{"demo-carol", "demo-bob"},
		messages: []demoMessage{
			{"demo-carol", "I am building a React frontend with JavaScript and a small REST API."},
			{"demo-bob", "Try TypeScript for the components, the HTML and CSS stay the same."},
		},
	},
	{
		id:           "demo-languages",
		name:         "Language Exchange",
		participants: []string{"demo-dave"},
		messages: []demoMessage{
			{"demo-dave", "Let's practice French conversation and grammar every Tuesday."},
		},
	},
	{
		id:           "demo-empty",
		name:         "New Group",
		participants: []string{"demo-erin"},
	},
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	log.Println("Seeding demo conversations...")

	at := time.Now().UTC().Add(-time.Hour)
	for _, g := range demoGroups {
		existing, err := uow.ConversationRepository().FindByID(ctx, g.id)
		if err != nil {
			log.Printf("Error checking conversation '%s': %v", g.id, err)
			continue
		}
		if existing != nil {
			log.Printf("Conversation '%s' already exists, skipping...", g.id)
			continue
		}

		if err := uow.ConversationRepository().Create(ctx, &entity.Conversation{
			Id:             g.id,
			IsGroup:        true,
			GroupName:      g.name,
			ParticipantIds: g.participants,
		}); err != nil {
			log.Printf("Error creating conversation '%s': %v", g.id, err)
			continue
		}

		for _, m := range g.messages {
			at = at.Add(time.Second)
			if err := uow.MessageRepository().Create(ctx, &entity.Message{
				ConversationId: g.id,
				SenderId:       m.sender,
				Content:        m.content,
				Language:       "eng",
				Read:           true,
				CreatedAt:      at,
			}); err != nil {
				log.Printf("Error creating message in '%s': %v", g.id, err)
			}
		}
		log.Printf("Created conversation: %s (%d messages)", g.name, len(g.messages))
	}

	log.Println("Demo seeding completed!")
}
