package rolloff_api

import (
	"net/http"

	"github.com/BearBump/RollOff/internal/integrations/rolloffapi"
	"github.com/BearBump/RollOff/internal/models"
)

func (a *RolloffAPI) listContainers(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.ListContainers(r.Context())
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) getContainer(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.GetContainer(r.Context(), pathParam(r, "id"))
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) createContainer(w http.ResponseWriter, r *http.Request) {
	var in models.Container
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := a.svc.CreateContainer(r.Context(), in, r.Header.Get(rolloffapi.UpdatedByHeader))
	respond(w, r, http.StatusCreated, out, err)
}

func (a *RolloffAPI) updateContainer(w http.ResponseWriter, r *http.Request) {
	var in models.Container
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := a.svc.UpdateContainer(r.Context(), pathParam(r, "id"), in, r.Header.Get(rolloffapi.UpdatedByHeader))
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) deleteContainer(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.DeleteContainer(r.Context(), pathParam(r, "id"))
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) listCustomers(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.ListCustomers(r.Context())
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) searchCustomers(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.SearchCustomers(r.Context(), pathParam(r, "name"))
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := a.svc.GetCustomer(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) createCustomer(w http.ResponseWriter, r *http.Request) {
	var d models.CustomerDraft
	if err := decode(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := a.svc.CreateCustomer(r.Context(), d)
	respond(w, r, http.StatusCreated, out, err)
}

func (a *RolloffAPI) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var d models.CustomerDraft
	if err := decode(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := a.svc.UpdateCustomer(r.Context(), id, d)
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := a.svc.DeleteCustomer(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) listLogEntries(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.ListLogEntries(r.Context())
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) createLogEntry(w http.ResponseWriter, r *http.Request) {
	var d models.LogEntryDraft
	if err := decode(r, &d); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := a.svc.CreateLogEntry(r.Context(), d)
	respond(w, r, http.StatusCreated, out, err)
}

func (a *RolloffAPI) containerLogEntries(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.ListContainerLogEntries(r.Context(), pathParam(r, "id"))
	respond(w, r, http.StatusOK, out, err)
}

func (a *RolloffAPI) customerLogEntries(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := a.svc.ListCustomerLogEntries(r.Context(), id)
	respond(w, r, http.StatusOK, out, err)
}
