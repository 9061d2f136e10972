// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Entity names used by the delete policy table and audit metadata.
const (
	EntityPage           = "page"
	EntityNavigationItem = "navigation_item"
	EntityStaffMember    = "staff_member"
	EntityAchievement    = "achievement"
	EntityDirector       = "director"
	EntityContentSection = "content_section"
	EntityNewsItem       = "news_item"
	EntityEvent          = "event"
	EntityUsefulLink     = "useful_link"
	EntityMediaFile      = "media_file"
)

// DeletePolicy declares how DELETE behaves for an entity type. One table for
// all entities replaces the per-route branching the old system grew.
type DeletePolicy struct {
	// SupportsSoftDelete means DELETE without permanent=true marks the row
	// inactive instead of removing it.
	SupportsSoftDelete bool
	// CascadesOnDelete means permanent deletion removes child rows too
	// (enforced by ON DELETE CASCADE foreign keys).
	CascadesOnDelete bool
}

var deletePolicies = map[string]DeletePolicy{
	EntityPage:           {SupportsSoftDelete: true, CascadesOnDelete: true},
	EntityNavigationItem: {SupportsSoftDelete: true, CascadesOnDelete: true},
	EntityStaffMember:    {SupportsSoftDelete: true},
	EntityAchievement:    {SupportsSoftDelete: true},
	EntityDirector:       {SupportsSoftDelete: true},
	EntityContentSection: {SupportsSoftDelete: true},
	EntityNewsItem:       {SupportsSoftDelete: true},
	EntityEvent:          {SupportsSoftDelete: true},
	EntityUsefulLink:     {SupportsSoftDelete: true, CascadesOnDelete: true},
	EntityMediaFile:      {SupportsSoftDelete: true},
}

// DeletePolicyFor returns the delete policy for an entity type.
// Unknown entities get the safest policy: soft delete only, no cascade.
func DeletePolicyFor(entity string) DeletePolicy {
	if p, ok := deletePolicies[entity]; ok {
		return p
	}
	return DeletePolicy{SupportsSoftDelete: true}
}
