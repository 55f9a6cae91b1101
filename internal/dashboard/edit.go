package dashboard

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
	"github.com/bagdasarian/octofit-tracker/internal/editflow"
	"github.com/bagdasarian/octofit-tracker/internal/readmodel"
	"github.com/bagdasarian/octofit-tracker/internal/snapshot"
)

func (d *Dashboard) newEditPage(r *http.Request, flow *editflow.Flow, teams []apiclient.Team) editPage {
	page := editPage{
		basePage: d.base(r, "Edit user"),
		NoTeam:   readmodel.NoTeam,
	}
	page.Nav = navFor("/users")
	if flow != nil {
		user := flow.User()
		page.User = editUser{ID: string(user.ID), Username: user.Username}
		page.Form = flow.Form()
		page.Form.Password = ""
		page.Origin = flow.Origin()
	}
	for _, t := range teams {
		page.Teams = append(page.Teams, t.Name)
	}
	return page
}

// openFlow loads the user and the teams and starts an edit planned against
// origin. On failure it renders the error page itself and returns nil.
func (d *Dashboard) openFlow(w http.ResponseWriter, r *http.Request, origin editflow.Origin) (*editflow.Flow, *snapshot.Snapshot) {
	snap, err := snapshot.Load(r.Context(), d.client, snapshot.ForEdit)
	if err != nil {
		page := d.newEditPage(r, nil, nil)
		page.Error = d.loadError(r, err)
		d.render(w, http.StatusBadGateway, "edit", page)
		return nil, nil
	}

	id := r.PathValue("id")
	user, ok := snap.UserByID(id)
	if !ok {
		page := d.newEditPage(r, nil, nil)
		page.Error = "user " + id + " not found"
		d.render(w, http.StatusNotFound, "edit", page)
		return nil, nil
	}

	flow := editflow.New(d.client, d.logger)
	if err := flow.Resume(user, snap.Teams, origin); err != nil {
		page := d.newEditPage(r, nil, nil)
		page.Error = err.Error()
		d.render(w, http.StatusInternalServerError, "edit", page)
		return nil, nil
	}
	return flow, snap
}

func (d *Dashboard) editForm(w http.ResponseWriter, r *http.Request) {
	flow, snap := d.openFlow(w, r, editflow.Origin{})
	if flow == nil {
		return
	}
	d.render(w, http.StatusOK, "edit", d.newEditPage(r, flow, snap.Teams))
}

func (d *Dashboard) editSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	// the membership the form was rendered from, so a retry after a partly
	// applied save does not re-read it from the changed user record
	origin := editflow.Origin{
		Username: r.PostForm.Get("origin_username"),
		TeamID:   r.PostForm.Get("origin_team"),
	}
	flow, snap := d.openFlow(w, r, origin)
	if flow == nil {
		return
	}

	form := editflow.Form{
		Name:     r.PostForm.Get("name"),
		Username: r.PostForm.Get("username"),
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
		Team:     r.PostForm.Get("team"),
	}
	if err := flow.SetForm(form); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if r.PostForm.Get("action") == "preview" {
		page := d.newEditPage(r, flow, snap.Teams)
		plan, err := flow.Plan()
		if err != nil {
			page.Error = err.Error()
			d.render(w, http.StatusUnprocessableEntity, "edit", page)
			return
		}
		page.Preview = plan.Diff()
		if page.Preview == "" {
			page.Preview = "No membership changes."
		}
		d.render(w, http.StatusOK, "edit", page)
		return
	}

	if err := flow.Save(r.Context()); err != nil {
		d.logger.Warn("user save failed",
			zap.String("user_id", r.PathValue("id")),
			zap.String("state", flow.State().String()),
			zap.Error(err))
		page := d.newEditPage(r, flow, snap.Teams)
		page.Error = err.Error()
		d.render(w, http.StatusUnprocessableEntity, "edit", page)
		return
	}

	http.Redirect(w, r, savedRedirect(flow.User().Username), http.StatusSeeOther)
}
