package models

import "strings"

type Customer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	JobSiteInfo string `json:"job_site_info,omitempty"`

	// CurrentContainers is derived by the backend and never sent back.
	CurrentContainers []Container `json:"current_containers"`
}

type CustomerDraft struct {
	Name        string `json:"name" validate:"required,max=256"`
	Address     string `json:"address,omitempty" validate:"max=512"`
	Phone       string `json:"phone,omitempty" validate:"max=64"`
	JobSiteInfo string `json:"job_site_info,omitempty" validate:"max=1024"`
}

func (d CustomerDraft) Trimmed() CustomerDraft {
	return CustomerDraft{
		Name:        strings.TrimSpace(d.Name),
		Address:     strings.TrimSpace(d.Address),
		Phone:       strings.TrimSpace(d.Phone),
		JobSiteInfo: strings.TrimSpace(d.JobSiteInfo),
	}
}

func CustomerDraftOf(c Customer) CustomerDraft {
	return CustomerDraft{Name: c.Name, Address: c.Address, Phone: c.Phone, JobSiteInfo: c.JobSiteInfo}
}
