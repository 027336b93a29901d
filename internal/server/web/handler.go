package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/dmitrijs2005/userbook/internal/server/auth"
	"github.com/dmitrijs2005/userbook/internal/server/validation"
	"github.com/go-chi/chi/v5"
)

const (
	msgAdded   = "User added successfully!"
	msgUpdated = "User updated successfully!"
	msgDeleted = "User deleted successfully!"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, pageIndex, &pageData{
		Title:     "Users",
		Flash:     s.popFlash(w, r),
		CSRFToken: s.csrfToken(r),
		Users:     list,
	})
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageAdd, &pageData{
		Title:     "Add User",
		Flash:     s.popFlash(w, r),
		CSRFToken: s.csrfToken(r),
		Action:    "/add",
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	f := formFromRequest(r)

	u, err := s.users.Create(r.Context(), f)
	if err != nil {
		s.formError(w, r, pageAdd, &pageData{Title: "Add User", Action: "/add", Form: f}, err)
		return
	}

	s.logger.Info(r.Context(), "user created", "id", u.ID)
	s.setFlash(w, r, auth.FlashSuccess, msgAdded)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	u, err := s.users.Get(r.Context(), id)
	if errors.Is(err, common.ErrorNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, pageEdit, &pageData{
		Title:     "Edit User",
		Flash:     s.popFlash(w, r),
		CSRFToken: s.csrfToken(r),
		Action:    editPath(id),
		Form:      validation.FormFromUser(u),
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	f := formFromRequest(r)

	if _, err := s.users.Update(r.Context(), id, f); err != nil {
		s.formError(w, r, pageEdit, &pageData{Title: "Edit User", Action: editPath(id), Form: f}, err)
		return
	}

	s.logger.Info(r.Context(), "user updated", "id", id)
	s.setFlash(w, r, auth.FlashSuccess, msgUpdated)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user deleted", "id", id)
	s.setFlash(w, r, auth.FlashSuccess, msgDeleted)
	http.Redirect(w, r, "/", http.StatusFound)
}

// formError re-renders a form with field messages for validation and
// uniqueness failures, and falls back to 404/500 for everything else.
func (s *Server) formError(w http.ResponseWriter, r *http.Request, page string, data *pageData, err error) {
	var verrs validation.Errors
	var cerr *common.ConstraintError

	switch {
	case errors.As(err, &verrs):
		data.Errors = verrs.ByField()
		if invalid, ok := verrs.EmailError(); ok {
			data.Flash = &auth.Flash{Kind: auth.FlashDanger, Message: invalid.Reason}
		}
	case errors.As(err, &cerr):
		msg := duplicateMessage(cerr.Field)
		data.Flash = &auth.Flash{Kind: auth.FlashDanger, Message: msg}
		if cerr.Field != "" {
			data.Errors = map[string]string{cerr.Field: msg}
		}
	case errors.Is(err, common.ErrorNotFound):
		s.notFound(w, r)
		return
	default:
		s.serverError(w, r, err)
		return
	}

	data.CSRFToken = s.csrfToken(r)
	s.render(w, r, http.StatusOK, page, data)
}

func duplicateMessage(field string) string {
	switch field {
	case validation.FieldPhoneNumber:
		return "A user with this phone number already exists."
	case validation.FieldEmailID:
		return "A user with this email already exists."
	default:
		return "A user with these details already exists."
	}
}

func formFromRequest(r *http.Request) validation.Form {
	return validation.Form{
		FirstName:   r.PostFormValue(validation.FieldFirstName),
		LastName:    r.PostFormValue(validation.FieldLastName),
		PhoneNumber: r.PostFormValue(validation.FieldPhoneNumber),
		EmailID:     r.PostFormValue(validation.FieldEmailID),
		Address:     r.PostFormValue(validation.FieldAddress),
	}
}

// userID parses the {id} route parameter. Values that overflow int64 are
// treated like unknown ids.
func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func editPath(id int64) string {
	return fmt.Sprintf("/edit/%d", id)
}
