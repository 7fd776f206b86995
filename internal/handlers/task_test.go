package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/thefankor/KanbanBoard/internal/constants"
	"github.com/thefankor/KanbanBoard/internal/database"
	"github.com/thefankor/KanbanBoard/internal/dto"
	"github.com/thefankor/KanbanBoard/internal/models"
	"github.com/thefankor/KanbanBoard/internal/repository"
	"github.com/thefankor/KanbanBoard/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db             *gorm.DB
	handler        *TaskHandler
	projectService *services.ProjectService
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Column{},
		&models.Task{},
		&models.ProjectLog{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	columnRepo := repository.NewColumnRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	logRepo := repository.NewLogRepository(suite.db)
	logService := services.NewLogService(logRepo)

	suite.projectService = services.NewProjectService(projectRepo, userRepo, logService)
	taskService := services.NewTaskService(taskRepo, columnRepo, projectRepo, logService)
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Name:         username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

// createTestProject creates a project with its default columns and owner.
func (suite *TaskHandlerTestSuite) createTestProject(name string, ownerID uint64) *models.Project {
	project, err := suite.projectService.CreateProject(services.CreateProjectInput{
		Name:    name,
		OwnerID: ownerID,
	})
	suite.Require().NoError(err)
	return project
}

func (suite *TaskHandlerTestSuite) addTestMember(projectID, userID uint64, role models.ProjectRole) models.ProjectMember {
	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	suite.db.Create(&member)
	return member
}

func (suite *TaskHandlerTestSuite) firstColumn(projectID uint64) models.Column {
	var column models.Column
	suite.Require().NoError(
		suite.db.Where("project_id = ?", projectID).Order("position").First(&column).Error)
	return column
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, columnID, producerID uint64, assigneeID *uint64) *models.Task {
	task := &models.Task{
		ColumnID:    columnID,
		Title:       title,
		Description: "Test Description",
		ProducerID:  producerID,
		AssigneeID:  assigneeID,
	}
	suite.db.Create(task)
	return task
}

func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// setTaskContext simulates RequireTaskAccess
func (suite *TaskHandlerTestSuite) setTaskContext(c *gin.Context, task models.Task) {
	c.Set(constants.ContextKeyTask, task)
}

// setMemberContext simulates RequireProjectAccess
func (suite *TaskHandlerTestSuite) setMemberContext(c *gin.Context, member models.ProjectMember) {
	c.Set(constants.ContextKeyProjectMember, member)
}

// TestCreateTask_Success tests task creation by the project owner
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)

	requestBody := map[string]interface{}{
		"column_id":   column.ID,
		"title":       "New Task",
		"description": "Task Description",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/v1/tasks", body, owner.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Task", response.Title)
	assert.Equal(suite.T(), owner.ID, response.ProducerID)
	assert.Equal(suite.T(), column.ID, response.ColumnID)
}

// TestCreateTask_MemberForbidden tests that a plain member cannot create tasks
func (suite *TaskHandlerTestSuite) TestCreateTask_MemberForbidden() {
	owner := suite.createTestUser("owner")
	member := suite.createTestUser("member")
	project := suite.createTestProject("Test Project", owner.ID)
	suite.addTestMember(project.ID, member.ID, models.RoleMember)
	column := suite.firstColumn(project.ID)

	requestBody := map[string]interface{}{
		"column_id": column.ID,
		"title":     "New Task",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/v1/tasks", body, member.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestCreateTask_NotProjectMember tests that outsiders get 404, not 403
func (suite *TaskHandlerTestSuite) TestCreateTask_NotProjectMember() {
	owner := suite.createTestUser("owner")
	outsider := suite.createTestUser("outsider")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)

	requestBody := map[string]interface{}{
		"column_id": column.ID,
		"title":     "New Task",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/v1/tasks", body, outsider.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateTask_AssigneeNotMember tests assigning a non-member at creation
func (suite *TaskHandlerTestSuite) TestCreateTask_AssigneeNotMember() {
	owner := suite.createTestUser("owner")
	outsider := suite.createTestUser("outsider")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)

	requestBody := map[string]interface{}{
		"column_id":   column.ID,
		"title":       "New Task",
		"assignee_id": outsider.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/v1/tasks", body, owner.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_InvalidRequest tests task creation without a title
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidRequest() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)

	requestBody := map[string]interface{}{
		"column_id": column.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/v1/tasks", body, owner.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestGetBoard_Success tests the grouped board view
func (suite *TaskHandlerTestSuite) TestGetBoard_Success() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)
	task := suite.createTestTask("Board Task", column.ID, owner.ID, nil)

	c, w := suite.createAuthContext("GET", "/api/v1/projects/1/board", nil, owner.ID)
	suite.setMemberContext(c, models.ProjectMember{ProjectID: project.ID, UserID: owner.ID, Role: models.RoleOwner})

	suite.handler.GetBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.BoardDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), project.ID, response.ProjectID)
	assert.Len(suite.T(), response.Columns, 4)
	assert.Equal(suite.T(), "Backlog", response.Columns[0].Name)
	assert.Len(suite.T(), response.Columns[0].Tasks, 1)
	assert.Equal(suite.T(), task.Title, response.Columns[0].Tasks[0].Title)
}

// TestListTasks_TitleFilter tests the case-insensitive substring filter
func (suite *TaskHandlerTestSuite) TestListTasks_TitleFilter() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)
	suite.createTestTask("Write Quarterly REPORT", column.ID, owner.ID, nil)
	suite.createTestTask("Unrelated chore", column.ID, owner.ID, nil)

	c, w := suite.createAuthContext("GET", "/api/v1/projects/1/tasks", nil, owner.ID)
	c.Request.URL.RawQuery = "title=report"
	suite.setMemberContext(c, models.ProjectMember{ProjectID: project.ID, UserID: owner.ID, Role: models.RoleOwner})

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	tasks := response["tasks"]
	assert.Len(suite.T(), tasks, 1)
	assert.Equal(suite.T(), "Write Quarterly REPORT", tasks[0].Title)
}

// TestListTasks_AssigneeFilter tests filtering by assignee together with title
func (suite *TaskHandlerTestSuite) TestListTasks_AssigneeFilter() {
	owner := suite.createTestUser("owner")
	member := suite.createTestUser("member")
	project := suite.createTestProject("Test Project", owner.ID)
	suite.addTestMember(project.ID, member.ID, models.RoleMember)
	column := suite.firstColumn(project.ID)
	suite.createTestTask("Mine", column.ID, owner.ID, &member.ID)
	suite.createTestTask("Someone else's", column.ID, owner.ID, &owner.ID)
	suite.createTestTask("Nobody's", column.ID, owner.ID, nil)

	c, w := suite.createAuthContext("GET", "/api/v1/projects/1/tasks", nil, owner.ID)
	c.Request.URL.RawQuery = "assignee_id=2"
	suite.setMemberContext(c, models.ProjectMember{ProjectID: project.ID, UserID: owner.ID, Role: models.RoleOwner})

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	tasks := response["tasks"]
	assert.Len(suite.T(), tasks, 1)
	assert.Equal(suite.T(), "Mine", tasks[0].Title)
}

// TestUpdateTask_ClearDeadline tests removing a deadline
func (suite *TaskHandlerTestSuite) TestUpdateTask_ClearDeadline() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)
	task := suite.createTestTask("Deadlined", column.ID, owner.ID, nil)
	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	task.Deadline = &deadline
	suite.db.Save(task)

	requestBody := map[string]interface{}{
		"clear_deadline": true,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/v1/tasks/1", body, owner.ID)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), response.Deadline)
}

// TestUpdateTask_EmptyTitle tests that a title cannot be blanked out
func (suite *TaskHandlerTestSuite) TestUpdateTask_EmptyTitle() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)
	task := suite.createTestTask("Titled", column.ID, owner.ID, nil)

	requestBody := map[string]interface{}{
		"title": "",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/v1/tasks/1", body, owner.ID)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestMoveTask_Success tests moving a task between columns
func (suite *TaskHandlerTestSuite) TestMoveTask_Success() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)
	var target models.Column
	suite.Require().NoError(
		suite.db.Where("project_id = ? AND name = ?", project.ID, "Doing").First(&target).Error)
	task := suite.createTestTask("Movable", column.ID, owner.ID, nil)

	requestBody := map[string]interface{}{
		"column_id": target.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/v1/tasks/1/column", body, owner.ID)
	suite.setTaskContext(c, *task)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), target.ID, response.ColumnID)

	// The move left an audit entry
	var entry models.ProjectLog
	err = suite.db.Where("type = ? AND task_id = ?", services.LogTaskMoved, task.ID).First(&entry).Error
	assert.NoError(suite.T(), err)
}

// TestMoveTask_CrossProject tests that a task cannot leave its project
func (suite *TaskHandlerTestSuite) TestMoveTask_CrossProject() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Test Project", owner.ID)
	other := suite.createTestProject("Other Project", owner.ID)
	column := suite.firstColumn(project.ID)
	foreign := suite.firstColumn(other.ID)
	task := suite.createTestTask("Stuck", column.ID, owner.ID, nil)

	requestBody := map[string]interface{}{
		"column_id": foreign.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/v1/tasks/1/column", body, owner.ID)
	suite.setTaskContext(c, *task)

	suite.handler.MoveTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	// The task stayed where it was
	var reloaded models.Task
	suite.db.First(&reloaded, task.ID)
	assert.Equal(suite.T(), column.ID, reloaded.ColumnID)
}

// TestDeleteTask_Success tests task deletion and its audit trail
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)
	task := suite.createTestTask("Doomed", column.ID, owner.ID, nil)

	c, w := suite.createAuthContext("DELETE", "/api/v1/tasks/1", nil, owner.ID)
	suite.setTaskContext(c, *task)

	suite.handler.DeleteTask(c)
	// CreateTestContext bypasses the engine, so a status-only response is
	// never flushed to the recorder; flush it before asserting.
	c.Writer.WriteHeaderNow()

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Zero(suite.T(), count)

	// The log entry outlives the task and still references it
	var entry models.ProjectLog
	err := suite.db.Where("type = ?", services.LogTaskRemoved).First(&entry).Error
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), entry.TaskID)
	assert.Equal(suite.T(), task.ID, *entry.TaskID)
	assert.NotNil(suite.T(), entry.ProjectID)
	assert.Equal(suite.T(), project.ID, *entry.ProjectID)
}

// TestGetTask_Success tests task retrieval with preloaded relations
func (suite *TaskHandlerTestSuite) TestGetTask_Success() {
	owner := suite.createTestUser("owner")
	project := suite.createTestProject("Test Project", owner.ID)
	column := suite.firstColumn(project.ID)
	task := suite.createTestTask("Detailed", column.ID, owner.ID, &owner.ID)

	c, w := suite.createAuthContext("GET", "/api/v1/tasks/1", nil, owner.ID)
	suite.setTaskContext(c, *task)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), task.ID, response.ID)
	suite.Require().NotNil(response.Producer)
	assert.Equal(suite.T(), owner.Username, response.Producer.Username)
	suite.Require().NotNil(response.Assignee)
	assert.Equal(suite.T(), owner.Username, response.Assignee.Username)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
