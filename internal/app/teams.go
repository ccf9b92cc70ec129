package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/utakatalp/league-console/internal/league"
	"github.com/utakatalp/league-console/internal/view"
)

// InitializeStorage seeds the service with default teams and reloads them.
func (c *Controller) InitializeStorage(ctx context.Context) error {
	defer c.busy(view.ButtonInitDB)()
	c.screen.SetStatus("Initializing database...")

	if err := c.svc.InitDB(ctx); err != nil {
		return c.fail("Failed to initialize database", "Failed to initialize database", err)
	}
	c.succeed("Database initialized successfully!", "Database initialized with default teams!")
	return c.LoadTeams(ctx)
}

// LoadTeams refreshes the team list and count.
func (c *Controller) LoadTeams(ctx context.Context) error {
	defer c.busy(view.ButtonLoadTeams)()
	listTok := c.seq.issue(view.RegionTeams)
	countTok := c.seq.issue(view.RegionTeamCount)

	page, err := c.svc.ListTeams(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("load teams")
		c.screen.SetStatus("Failed to load teams")
		c.screen.ShowMessage(view.MessageError, "Failed to load teams: "+err.Error())
		return err
	}
	c.render(listTok, view.RenderTeams(page.Teams))
	c.render(countTok, view.RenderTeamCount(page.Count))
	return nil
}

// SetTeamForm stores pending add-team input.
func (c *Controller) SetTeamForm(name, strength string) {
	c.update(func(s State) State {
		return s.withForm(TeamForm{Name: name, Strength: strength})
	})
}

// AddTeam validates and submits the pending form. The form is cleared only
// when the service accepts the team.
func (c *Controller) AddTeam(ctx context.Context) error {
	form := c.State().Form
	name, strength, err := league.ValidateTeam(form.Name, form.Strength)
	if err != nil {
		c.reject(teamReason(err))
		return err
	}

	defer c.busy(view.ButtonAddTeam)()
	c.screen.SetStatus("Adding team...")

	if err := c.svc.CreateTeam(ctx, name, strength); err != nil {
		return c.fail("Failed to add team", "Failed to add team", err)
	}
	c.update(func(s State) State { return s.withForm(TeamForm{}) })
	c.succeed("Team added successfully!", fmt.Sprintf("Team %s added successfully!", name))
	return c.LoadTeams(ctx)
}

// EditTeam renames and re-rates team id after confirmation.
func (c *Controller) EditTeam(ctx context.Context, id int, name, strengthText string) error {
	name, strength, err := league.ValidateTeam(name, strengthText)
	if err != nil {
		c.reject(teamReason(err))
		return err
	}
	if !c.confirm.Confirm(fmt.Sprintf("Update team #%d to %s (strength %d)?", id, name, strength)) {
		return nil
	}

	c.screen.SetStatus("Updating team...")
	if err := c.svc.UpdateTeam(ctx, id, name, strength); err != nil {
		return c.fail("Failed to update team", "Failed to update team", err)
	}
	c.succeed("Team updated successfully!", fmt.Sprintf("Team %s updated successfully!", name))
	return c.LoadTeams(ctx)
}

// DeleteTeam removes team id after confirmation.
func (c *Controller) DeleteTeam(ctx context.Context, id int) error {
	if !c.confirm.Confirm("Are you sure you want to delete this team?") {
		return nil
	}

	c.screen.SetStatus("Deleting team...")
	if err := c.svc.DeleteTeam(ctx, id); err != nil {
		return c.fail("Failed to delete team", "Failed to delete team", err)
	}
	c.succeed("Team deleted successfully!", "Team deleted successfully!")
	return c.LoadTeams(ctx)
}

// ClearTeams removes every team after confirmation.
func (c *Controller) ClearTeams(ctx context.Context) error {
	if !c.confirm.Confirm("Are you sure you want to clear all teams? This action cannot be undone.") {
		return nil
	}

	defer c.busy(view.ButtonClearTeams)()
	c.screen.SetStatus("Clearing all teams...")

	if err := c.svc.ClearTeams(ctx); err != nil {
		return c.fail("Failed to clear teams", "Failed to clear teams", err)
	}
	c.succeed("All teams cleared successfully!", "All teams have been removed from the database")
	c.renderNow(view.RegionTeams, view.RenderTeams(nil))
	c.renderNow(view.RegionTeamCount, view.RenderTeamCount(0))
	return nil
}

func teamReason(err error) string {
	var te *league.TeamError
	if errors.As(err, &te) {
		return te.Reason
	}
	return err.Error()
}
