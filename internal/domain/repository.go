package domain

import "context"

// TransactionManager runs fn inside a single database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Lookups return (nil, nil) when the record does not exist.

// TagRepository persists tags and their links to materials and quizzes.
type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	GetByID(ctx context.Context, id string) (*Tag, error)
	GetByName(ctx context.Context, name string) (*Tag, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Tag, error)
	List(ctx context.Context) ([]*Tag, error)
	Update(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, id string) error

	ListByMaterials(ctx context.Context, materialIDs []string) (map[string][]*Tag, error)
	ReplaceMaterialTags(ctx context.Context, materialID string, tagIDs []string) error
	RemoveMaterialTags(ctx context.Context, materialID string, tagIDs []string) error

	ListByQuizzes(ctx context.Context, quizIDs []string) (map[string][]*Tag, error)
	ReplaceQuizTags(ctx context.Context, quizID string, tagIDs []string) error
	RemoveQuizTags(ctx context.Context, quizID string, tagIDs []string) error
}

// MaterialRepository persists training materials and their quiz attachments.
type MaterialRepository interface {
	Create(ctx context.Context, material *TrainingMaterial) error
	GetByID(ctx context.Context, id string) (*TrainingMaterial, error)
	Update(ctx context.Context, material *TrainingMaterial) error
	Search(ctx context.Context, filter SearchFilter) ([]*TrainingMaterial, error)
	ListByTag(ctx context.Context, tagID string) ([]*TrainingMaterial, error)

	AttachQuiz(ctx context.Context, materialID, quizID string) error
	DetachQuiz(ctx context.Context, materialID, quizID string) (bool, error)
	ListAttachedQuizIDs(ctx context.Context, materialID string) ([]string, error)
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *Quiz) error
	GetByID(ctx context.Context, id string) (*Quiz, error)
	Update(ctx context.Context, quiz *Quiz) error
	Search(ctx context.Context, filter SearchFilter) ([]*Quiz, error)
	ListByTag(ctx context.Context, tagID string) ([]*Quiz, error)
	ListByMaterial(ctx context.Context, materialID string) ([]*Quiz, error)
}

// QuestionRepository persists the question bank.
type QuestionRepository interface {
	Create(ctx context.Context, question *Question) error
	GetByID(ctx context.Context, id string) (*Question, error)
	Update(ctx context.Context, question *Question) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter SearchFilter) ([]*Question, error)
	// FindIDsByTags returns ids of questions linked to any quiz tagged with one
	// of tagIDs, directly or through an attached training material.
	FindIDsByTags(ctx context.Context, tagIDs []string) ([]string, error)
}

// QuizQuestionRepository persists ordered quiz membership.
type QuizQuestionRepository interface {
	ListLinks(ctx context.Context, quizID string) ([]QuizQuestionLink, error)
	ListQuestions(ctx context.Context, quizID string) ([]*QuizQuestion, error)
	AddLinks(ctx context.Context, links []QuizQuestionLink) error
	RemoveLink(ctx context.Context, quizID, questionID string) (bool, error)
	UpdateOrder(ctx context.Context, quizID, questionID string, orderIndex int) error
	ListQuizIDsByQuestion(ctx context.Context, questionID string) ([]string, error)
	DeleteByQuestion(ctx context.Context, questionID string) error
}

type JobDescriptionRepository interface {
	Create(ctx context.Context, job *JobDescription) error
	GetByID(ctx context.Context, id string) (*JobDescription, error)
	Update(ctx context.Context, job *JobDescription) error
	Search(ctx context.Context, filter SearchFilter) ([]*JobDescription, error)
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	Update(ctx context.Context, candidate *Candidate) error
	Search(ctx context.Context, filter SearchFilter) ([]*Candidate, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, employee *Employee) error
	Search(ctx context.Context, filter SearchFilter) ([]*Employee, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Search(ctx context.Context, filter SearchFilter) ([]*User, error)
}
