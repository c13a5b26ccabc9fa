package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/adityarama/folio/internal/domain"
	"github.com/adityarama/folio/internal/service"
	"github.com/adityarama/folio/internal/session"
)

// ProjectListPageData contains project listing page data.
type ProjectListPageData struct {
	PageData
	Projects []*domain.Project
}

// ProjectPageData contains single-project page data.
type ProjectPageData struct {
	PageData
	Project *domain.Project
}

func (h *WebHandler) handleProjectList(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	projects, err := h.projectService.List(r.Context())
	if err != nil {
		h.httpError(w, err, "list projects")
		return
	}

	data := ProjectListPageData{PageData: newPageData("Projects", sess), Projects: projects}
	h.consumeFlashes(r, sess, &data.PageData)
	h.render(w, "project.html", data)
}

func (h *WebHandler) handleProjectDetail(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	project, err := h.projectService.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		h.httpError(w, err, "project detail")
		return
	}

	data := ProjectPageData{PageData: newPageData(project.Name, sess), Project: project}
	h.render(w, "detail.html", data)
}

func (h *WebHandler) handleProjectForm(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	data := newPageData("Add Project", sess)
	h.consumeFlashes(r, sess, &data)
	h.render(w, "addproject.html", data)
}

func (h *WebHandler) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	form, err := h.parseProjectForm(r)
	if err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	_, err = h.projectService.Create(r.Context(), service.CreateInput{
		Identity:     sess.User,
		Name:         form.name,
		Description:  form.description,
		StartDate:    form.startDate,
		EndDate:      form.endDate,
		Technologies: form.technologies,
		File:         form.file,
	})
	if err != nil {
		h.httpError(w, err, "create project")
		return
	}

	h.flashRedirect(w, r, sess, session.FlashSuccess, "Project added successfully!", "/project")
}

func (h *WebHandler) handleProjectEditView(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	project, err := h.projectService.GetOwned(r.Context(), id, sess.User)
	if err != nil {
		h.httpError(w, err, "edit project view")
		return
	}

	data := ProjectPageData{PageData: newPageData("Edit Project", sess), Project: project}
	h.render(w, "editproject.html", data)
}

func (h *WebHandler) handleProjectEdit(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	form, err := h.parseProjectForm(r)
	if err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	_, err = h.projectService.Update(r.Context(), service.UpdateInput{
		ID:            id,
		Identity:      sess.User,
		Name:          form.name,
		Description:   form.description,
		StartDate:     form.startDate,
		EndDate:       form.endDate,
		Technologies:  form.technologies,
		File:          form.file,
		ExistingImage: form.existingImage,
	})
	if err != nil {
		h.httpError(w, err, "edit project")
		return
	}

	h.flashRedirect(w, r, sess, session.FlashSuccess, "Project updated successfully!", "/project")
}

func (h *WebHandler) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	id, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	if err := h.projectService.Delete(r.Context(), id, sess.User); err != nil {
		h.httpError(w, err, "delete project")
		return
	}

	h.flashRedirect(w, r, sess, session.FlashSuccess, "Project deleted successfully!", "/project")
}

// parseID extracts the {id} route parameter.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// projectForm holds the parsed project form fields.
type projectForm struct {
	name          string
	description   string
	startDate     time.Time
	endDate       *time.Time
	technologies  []string
	existingImage string
	file          *service.Upload
}

// parseProjectForm reads the project create/edit form. The form may be
// multipart (file input present) or urlencoded.
func (h *WebHandler) parseProjectForm(r *http.Request) (*projectForm, error) {
	err := r.ParseMultipartForm(h.maxUploadSize)
	if err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}

	form := &projectForm{
		name:          r.FormValue("project_name"),
		description:   r.FormValue("description"),
		technologies:  r.Form["technologies"],
		existingImage: r.FormValue("existingImage"),
	}

	if v := r.FormValue("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
		form.startDate = t
	}
	if v := r.FormValue("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
		form.endDate = &t
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		form.file = &service.Upload{Reader: file, Filename: header.Filename}
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}

	return form, nil
}
