package controllers

import (
	"salesproject-backend/dto"
	"salesproject-backend/middlewares"
	"salesproject-backend/repositories"
	"salesproject-backend/services"
	"salesproject-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProjectController struct {
	projects *services.ProjectService
}

func NewProjectController(projects *services.ProjectService) *ProjectController {
	return &ProjectController{projects: projects}
}

func pageRequest(c *fiber.Ctx) repositories.PageRequest {
	return repositories.PageRequest{
		Number: utils.ParseIntDefault(c.Query("pageNumber"), 0),
		Size:   utils.ParseIntDefault(c.Query("pageSize"), 10),
	}
}

func projectID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+param)
	}
	return uint(id), nil
}

// List handles GET /project?pageSize=&pageNumber=&status=.
func (pc *ProjectController) List(c *fiber.Ctx) error {
	status, err := services.ParseProjectStatus(c.Query("status"))
	if err != nil {
		return err
	}
	page, err := pc.projects.FindAll(c.UserContext(), pageRequest(c), status)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (pc *ProjectController) Get(c *fiber.Ctx) error {
	id, err := projectID(c, "id")
	if err != nil {
		return err
	}
	view, err := pc.projects.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// StatusNot handles GET /project/status-not/:status.
func (pc *ProjectController) StatusNot(c *fiber.Ctx) error {
	status, err := services.ParseProjectStatus(c.Params("status"))
	if err != nil {
		return err
	}
	if status == nil {
		return fiber.NewError(fiber.StatusBadRequest, "status is required")
	}
	page, err := pc.projects.FindStatusNot(c.UserContext(), *status, pageRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// ByTaskPriority handles GET /project/by-task-priority/:priority.
func (pc *ProjectController) ByTaskPriority(c *fiber.Ctx) error {
	priority, err := services.ParseTaskPriority(c.Params("priority"))
	if err != nil {
		return err
	}
	page, err := pc.projects.FindIDsByTaskPriority(c.UserContext(), priority, pageRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Latest handles GET /project/latest?start=&end=&task=.
func (pc *ProjectController) Latest(c *fiber.Ctx) error {
	view, err := pc.projects.FindLatestWithin(c.UserContext(), c.Query("start"), c.Query("end"), c.Query("task"))
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (pc *ProjectController) Create(c *fiber.Ctx) error {
	var in dto.ProjectInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	view, err := pc.projects.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Update handles PUT /project/:id, a full replace.
func (pc *ProjectController) Update(c *fiber.Ctx) error {
	id, err := projectID(c, "id")
	if err != nil {
		return err
	}
	var in dto.ProjectInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	view, err := pc.projects.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Patch handles PATCH /project/:id.
func (pc *ProjectController) Patch(c *fiber.Ctx) error {
	id, err := projectID(c, "id")
	if err != nil {
		return err
	}
	var patch dto.ProjectPatch
	if err := middlewares.BindAndValidate(c, &patch); err != nil {
		return err
	}
	view, err := pc.projects.Patch(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(view)
}

func (pc *ProjectController) Delete(c *fiber.Ctx) error {
	id, err := projectID(c, "id")
	if err != nil {
		return err
	}
	if err := pc.projects.DeleteByID(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddTask handles POST /project/:id/tasks.
func (pc *ProjectController) AddTask(c *fiber.Ctx) error {
	id, err := projectID(c, "id")
	if err != nil {
		return err
	}
	var in dto.TaskInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	task, err := pc.projects.AddTask(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// RemoveTask handles DELETE /project/:id/tasks/:taskId.
func (pc *ProjectController) RemoveTask(c *fiber.Ctx) error {
	id, err := projectID(c, "id")
	if err != nil {
		return err
	}
	taskID, err := projectID(c, "taskId")
	if err != nil {
		return err
	}
	if err := pc.projects.RemoveTask(c.UserContext(), id, taskID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
