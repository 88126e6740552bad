package handler_test

import (
	"context"
	"time"

	"techcom/internal/domain"
	"techcom/internal/dto"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	args := m.Called(ctx, refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthClaims), args.Error(1)
}

func (m *MockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	args := m.Called(ctx, user, ttl, tokenType)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) SearchUsers(ctx context.Context, filter domain.SearchFilter) ([]dto.UserResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.UserResponse), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserService) DeactivateUser(ctx context.Context, actorID, id string) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func (m *MockUserService) RestoreUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

type MockTagService struct{ mock.Mock }

func (m *MockTagService) CreateTag(ctx context.Context, req dto.TagRequest) (*dto.TagResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TagResponse), args.Error(1)
}

func (m *MockTagService) GetTag(ctx context.Context, id string) (*dto.TagResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TagResponse), args.Error(1)
}

func (m *MockTagService) ListTags(ctx context.Context) ([]dto.TagResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TagResponse), args.Error(1)
}

func (m *MockTagService) UpdateTag(ctx context.Context, id string, req dto.TagRequest) (*dto.TagResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TagResponse), args.Error(1)
}

func (m *MockTagService) DeleteTag(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTagService) ListByTag(ctx context.Context, id string) (*dto.TagItemsResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TagItemsResponse), args.Error(1)
}

type MockMaterialService struct{ mock.Mock }

func (m *MockMaterialService) CreateMaterial(ctx context.Context, actorID string, req dto.CreateMaterialRequest, files []domain.FileUpload) (*dto.MaterialResponse, error) {
	args := m.Called(ctx, actorID, req, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MaterialResponse), args.Error(1)
}

func (m *MockMaterialService) GetMaterial(ctx context.Context, id string) (*dto.MaterialDetailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MaterialDetailResponse), args.Error(1)
}

func (m *MockMaterialService) SearchMaterials(ctx context.Context, filter domain.SearchFilter) ([]dto.MaterialResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.MaterialResponse), args.Error(1)
}

func (m *MockMaterialService) UpdateMaterial(ctx context.Context, id string, req dto.UpdateMaterialRequest, files []domain.FileUpload) (*dto.MaterialResponse, error) {
	args := m.Called(ctx, id, req, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MaterialResponse), args.Error(1)
}

func (m *MockMaterialService) ArchiveMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MaterialResponse), args.Error(1)
}

func (m *MockMaterialService) RestoreMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MaterialResponse), args.Error(1)
}

func (m *MockMaterialService) AssignTags(ctx context.Context, id string, tagIDs []string) (*dto.MaterialResponse, error) {
	args := m.Called(ctx, id, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MaterialResponse), args.Error(1)
}

func (m *MockMaterialService) RemoveTags(ctx context.Context, id string, tagIDs []string) (*dto.MaterialResponse, error) {
	args := m.Called(ctx, id, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MaterialResponse), args.Error(1)
}

func (m *MockMaterialService) RelevantQuizzes(ctx context.Context, id string) ([]dto.QuizResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.QuizResponse), args.Error(1)
}

func (m *MockMaterialService) AttachQuiz(ctx context.Context, id, quizID string) error {
	return m.Called(ctx, id, quizID).Error(0)
}

func (m *MockMaterialService) DetachQuiz(ctx context.Context, id, quizID string) error {
	return m.Called(ctx, id, quizID).Error(0)
}

func (m *MockMaterialService) MaterialQuizzes(ctx context.Context, id string) ([]dto.QuizResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.QuizResponse), args.Error(1)
}

func (m *MockMaterialService) ResolveFile(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

type MockQuizService struct{ mock.Mock }

func (m *MockQuizService) CreateQuiz(ctx context.Context, actorID string, req dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	return m.quiz(m.Called(ctx, id))
}

func (m *MockQuizService) SearchQuizzes(ctx context.Context, filter domain.SearchFilter) ([]dto.QuizResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) UpdateQuiz(ctx context.Context, id string, req dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	return m.quiz(m.Called(ctx, id, req))
}

func (m *MockQuizService) ArchiveQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	return m.quiz(m.Called(ctx, id))
}

func (m *MockQuizService) RestoreQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	return m.quiz(m.Called(ctx, id))
}

func (m *MockQuizService) AssignTags(ctx context.Context, id string, tagIDs []string) (*dto.QuizResponse, error) {
	return m.quiz(m.Called(ctx, id, tagIDs))
}

func (m *MockQuizService) RemoveTags(ctx context.Context, id string, tagIDs []string) (*dto.QuizResponse, error) {
	return m.quiz(m.Called(ctx, id, tagIDs))
}

func (m *MockQuizService) quiz(args mock.Arguments) (*dto.QuizResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

type MockQuestionService struct{ mock.Mock }

func (m *MockQuestionService) CreateQuestion(ctx context.Context, actorID string, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	return m.question(m.Called(ctx, actorID, req))
}

func (m *MockQuestionService) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	return m.question(m.Called(ctx, id))
}

func (m *MockQuestionService) SearchQuestions(ctx context.Context, filter domain.SearchFilter) ([]dto.QuestionResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.QuestionResponse), args.Error(1)
}

func (m *MockQuestionService) UpdateQuestion(ctx context.Context, id string, req dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	return m.question(m.Called(ctx, id, req))
}

func (m *MockQuestionService) DeleteQuestion(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockQuestionService) question(args mock.Arguments) (*dto.QuestionResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionResponse), args.Error(1)
}

type MockCompositionService struct{ mock.Mock }

func (m *MockCompositionService) AddQuestion(ctx context.Context, quizID, questionID string) error {
	return m.Called(ctx, quizID, questionID).Error(0)
}

func (m *MockCompositionService) AutoAddByTags(ctx context.Context, req dto.AutoAddRequest) (*dto.AutoAddResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AutoAddResponse), args.Error(1)
}

func (m *MockCompositionService) Reorder(ctx context.Context, quizID string, orderedIDs []string) ([]dto.QuizQuestionResponse, error) {
	args := m.Called(ctx, quizID, orderedIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.QuizQuestionResponse), args.Error(1)
}

func (m *MockCompositionService) RemoveQuestion(ctx context.Context, quizID, questionID string) error {
	return m.Called(ctx, quizID, questionID).Error(0)
}

func (m *MockCompositionService) ListQuestions(ctx context.Context, quizID string) ([]dto.QuizQuestionResponse, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.QuizQuestionResponse), args.Error(1)
}

func (m *MockCompositionService) Stats(ctx context.Context, quizID string) (*dto.QuizStatsResponse, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizStatsResponse), args.Error(1)
}

func (m *MockCompositionService) CreateQuestionInQuiz(ctx context.Context, actorID, quizID string, req dto.CreateQuestionRequest) (*dto.QuizQuestionResponse, error) {
	args := m.Called(ctx, actorID, quizID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizQuestionResponse), args.Error(1)
}

type MockJobDescriptionService struct{ mock.Mock }

func (m *MockJobDescriptionService) CreateJob(ctx context.Context, actorID string, req dto.JobDescriptionRequest) (*dto.JobDescriptionResponse, error) {
	return m.job(m.Called(ctx, actorID, req))
}

func (m *MockJobDescriptionService) GetJob(ctx context.Context, id string, viewer domain.Role) (*dto.JobDescriptionResponse, error) {
	return m.job(m.Called(ctx, id, viewer))
}

func (m *MockJobDescriptionService) SearchJobs(ctx context.Context, filter domain.SearchFilter, viewer domain.Role) ([]dto.JobDescriptionResponse, error) {
	args := m.Called(ctx, filter, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.JobDescriptionResponse), args.Error(1)
}

func (m *MockJobDescriptionService) UpdateJob(ctx context.Context, id string, req dto.UpdateJobDescriptionRequest) (*dto.JobDescriptionResponse, error) {
	return m.job(m.Called(ctx, id, req))
}

func (m *MockJobDescriptionService) DeleteJob(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobDescriptionService) RestoreJob(ctx context.Context, id string) (*dto.JobDescriptionResponse, error) {
	return m.job(m.Called(ctx, id))
}

func (m *MockJobDescriptionService) job(args mock.Arguments) (*dto.JobDescriptionResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobDescriptionResponse), args.Error(1)
}

type MockCandidateService struct{ mock.Mock }

func (m *MockCandidateService) CreateCandidate(ctx context.Context, req dto.CandidateRequest) (*dto.CandidateResponse, error) {
	return m.candidate(m.Called(ctx, req))
}

func (m *MockCandidateService) GetCandidate(ctx context.Context, id string) (*dto.CandidateResponse, error) {
	return m.candidate(m.Called(ctx, id))
}

func (m *MockCandidateService) SearchCandidates(ctx context.Context, filter domain.SearchFilter) ([]dto.CandidateResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CandidateResponse), args.Error(1)
}

func (m *MockCandidateService) UpdateCandidate(ctx context.Context, id string, req dto.UpdateCandidateRequest) (*dto.CandidateResponse, error) {
	return m.candidate(m.Called(ctx, id, req))
}

func (m *MockCandidateService) DeleteCandidate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateService) RestoreCandidate(ctx context.Context, id string) (*dto.CandidateResponse, error) {
	return m.candidate(m.Called(ctx, id))
}

func (m *MockCandidateService) candidate(args mock.Arguments) (*dto.CandidateResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CandidateResponse), args.Error(1)
}

type MockEmployeeService struct{ mock.Mock }

func (m *MockEmployeeService) CreateEmployee(ctx context.Context, req dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	return m.employee(m.Called(ctx, req))
}

func (m *MockEmployeeService) GetEmployee(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	return m.employee(m.Called(ctx, id))
}

func (m *MockEmployeeService) SearchEmployees(ctx context.Context, filter domain.SearchFilter) ([]dto.EmployeeResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.EmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) UpdateEmployee(ctx context.Context, id string, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	return m.employee(m.Called(ctx, id, req))
}

func (m *MockEmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEmployeeService) RestoreEmployee(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	return m.employee(m.Called(ctx, id))
}

func (m *MockEmployeeService) employee(args mock.Arguments) (*dto.EmployeeResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EmployeeResponse), args.Error(1)
}
