package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formflow/internal/config"
	"formflow/internal/model"
	"formflow/internal/repository"
	"formflow/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	repository.EnsureIndexes(ctx, db)
	formRepo := repository.NewFormRepo(db)

	// Same id the owner gets on login
	ownerID := service.OwnerID(cfg.OwnerUsername)

	form := demoForm()
	form.OwnerID = ownerID
	if issues := form.Schema.Validate(); len(issues) > 0 {
		log.Fatalf("Demo form is invalid: %v", issues)
	}

	id, err := formRepo.Create(ctx, form)
	if err != nil {
		log.Fatalf("Failed to insert form: %v", err)
	}

	fmt.Printf("Successfully created demo form '%s' (%s) for owner '%s'\n", form.Title, id, ownerID)
}

func demoForm() *model.Form {
	agreement := []model.Item{
		{ID: "disagree", Label: "Disagree"},
		{ID: "neutral", Label: "Neutral"},
		{ID: "agree", Label: "Agree"},
	}

	return &model.Form{
		Title:       "Cat Owner Survey",
		Description: "A short survey about life with cats.",
		Published:   true,
		Schema: model.FormSchema{
			Settings: model.FormSettings{SubmitLabel: "Send", ShowProgress: true},
			Fields: []model.FieldDefinition{
				{ID: "intro", Type: model.FieldHeading, Label: "Welcome! This takes about two minutes."},
				{ID: "name", Type: model.FieldShortText, Label: "Your name", Required: true},

				{ID: "s_pets", Type: model.FieldSection, Label: "Your pets", Section: &model.SectionConfig{AllowBack: true}},
				{
					ID:       "has_cats",
					Type:     model.FieldChoice,
					Label:    "Do you have cats?",
					Required: true,
					Options:  []string{"Yes", "No", "Prefer not to say"},
					Jumps: []model.JumpRule{
						{OptionValue: "No", Action: model.JumpTo, TargetSectionID: "s_feedback"},
						{OptionValue: "Prefer not to say", Action: model.JumpSubmit},
					},
				},
				{
					ID:    "cat_count",
					Type:  model.FieldNumeric,
					Label: "How many?",
					Conditional: &model.ConditionalConfig{
						Enabled: true,
						Action:  model.ActionShow,
						Combine: model.CombineAll,
						Rules:   []model.ConditionalRule{{SourceFieldID: "has_cats", Operator: model.OpEquals, Value: "Yes"}},
					},
				},
				{ID: "adopted", Type: model.FieldDate, Label: "When did your first cat move in?"},

				{ID: "s_habits", Type: model.FieldSection, Label: "Habits", Section: &model.SectionConfig{AllowBack: true}},
				{
					ID:    "activities",
					Type:  model.FieldMultiChoice,
					Label: "What does your cat enjoy?",
					Options: []string{
						"Napping", "Hunting toys", "Window watching", "Climbing",
					},
				},
				{
					ID:    "habits",
					Type:  model.FieldScale,
					Label: "How much do you agree?",
					Scale: &model.ScaleConfig{
						Statements: []model.Item{
							{ID: "sleeps", Label: "My cat sleeps most of the day"},
							{ID: "talks", Label: "My cat is vocal"},
						},
						Labels: agreement,
					},
				},
				{
					ID:    "meals",
					Type:  model.FieldMatrix,
					Label: "Which food at which meal?",
					Matrix: &model.MatrixConfig{
						Rows:     []model.Item{{ID: "breakfast", Label: "Breakfast"}, {ID: "dinner", Label: "Dinner"}},
						Columns:  []model.Item{{ID: "dry", Label: "Dry"}, {ID: "wet", Label: "Wet"}, {ID: "raw", Label: "Raw"}},
						Multiple: true,
					},
				},
				{
					ID:    "why_nap",
					Type:  model.FieldLongText,
					Label: "Why do cats nap so much?",
					Grading: &model.GradingConfig{
						Enabled:          true,
						ReferenceAnswer:  "Cats are predators that conserve energy by sleeping between short bursts of hunting",
						Keywords:         []string{"energy", "hunting", "predators"},
						MinWords:         5,
						Mode:             model.GradingCombined,
						PassingThreshold: 50,
						Points:           20,
					},
				},

				{ID: "s_feedback", Type: model.FieldSection, Label: "Feedback", Section: &model.SectionConfig{AllowBack: false}},
				{ID: "satisfaction", Type: model.FieldRating, Label: "How did you like this survey?", Rating: &model.RatingConfig{Max: 5, Icon: "star"}},
				{ID: "referral", Type: model.FieldDropdown, Label: "How did you find us?", Options: []string{"Friend", "Search", "Social media"}},
				{ID: "comments", Type: model.FieldLongText, Label: "Anything else?"},
			},
		},
	}
}
