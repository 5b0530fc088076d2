package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/servicebot/internal/fsm"
	"github.com/m3rciful/servicebot/internal/orders"
	tghelpers "github.com/m3rciful/servicebot/internal/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

func (a *App) registerAdminCallbacks() {
	_ = a.reg.RegisterCallback(cbAdminPanel, a.adminOnly(a.handleAdminPanel))
	_ = a.reg.RegisterCallback(cbShowStats, a.adminOnly(a.handleShowStats))
	_ = a.reg.RegisterCallback(cbListNewOrders, a.adminOnly(a.handleListNewOrders))
	_ = a.reg.RegisterCallback(cbAddAdmin, a.adminOnly(a.handleAddAdmin))
	_ = a.reg.RegisterCallback(cbRemoveAdmin, a.adminOnly(a.handleRemoveAdmin))
	_ = a.reg.RegisterCallback(cbConfirmRemove, a.adminOnly(a.handleConfirmRemove))
	_ = a.reg.RegisterCallback(cbStatusProcessed, a.adminOnly(a.statusChoiceHandler(orders.StatusProcessed)))
	_ = a.reg.RegisterCallback(cbStatusInProgress, a.adminOnly(a.statusChoiceHandler(orders.StatusInProgress)))
}

func (a *App) registerAdminStates() {
	a.states.RegisterHandler(fsm.StateAdminStatusID, a.stateAdminStatusID)
	a.states.RegisterHandler(fsm.StateRosterAddID, a.stateRosterAddID)
}

// Status change flow.

func (a *App) handleAdminPanel(c tele.Context) error {
	a.states.StartFlow(c.Sender().ID, fsm.FlowAdminStatus, fsm.StateAdminStatusID)
	return tghelpers.EditOrSend(c, textAskAdminRequestID)
}

func (a *App) stateAdminStatusID(c tele.Context) error {
	id, ok := parseOrderID(c.Text())
	ctx := tghelpers.BuildContext(c)
	if !ok || !a.svc.Exists(ctx, id) {
		return tghelpers.SendText(c, textBadRequestID)
	}
	userID := c.Sender().ID
	a.states.Mutate(userID, func(s *fsm.Session) { s.AdminStatus.OrderID = id })
	a.states.SetState(userID, fsm.StateAdminStatusChoice)
	return tghelpers.SendKB(c, textChooseNewStatus, adminStatusKeyboard())
}

func (a *App) statusChoiceHandler(status orders.Status) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		sess := a.states.Snapshot(userID)
		if sess.State != fsm.StateAdminStatusChoice {
			return a.sendMainMenu(c)
		}

		ctx := tghelpers.BuildContext(c)
		order, err := a.svc.ChangeStatus(ctx, sess.AdminStatus.OrderID, status)
		a.states.Clear(userID)
		if err != nil {
			return tghelpers.EditOrSend(c,
				fmt.Sprintf("Не удалось изменить статус заявки #%d.", sess.AdminStatus.OrderID))
		}
		return tghelpers.EditOrSend(c, statusChangedText(order))
	}
}

// Analytics and order list.

func (a *App) handleShowStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	st, err := a.svc.ComputeStats(ctx)
	if err != nil {
		return tghelpers.SendText(c, textSaveFailed)
	}
	return tghelpers.SendMDV2(c, statsText(st))
}

func (a *App) handleListNewOrders(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	list, err := a.svc.ListActive(ctx)
	if err != nil {
		return tghelpers.SendText(c, textSaveFailed)
	}
	return tghelpers.SendText(c, ordersListText(list))
}

// Roster management.

func (a *App) handleAddAdmin(c tele.Context) error {
	a.states.StartFlow(c.Sender().ID, fsm.FlowRosterAdd, fsm.StateRosterAddID)
	return tghelpers.EditOrSend(c, textAskNewAdminID)
}

func (a *App) stateRosterAddID(c tele.Context) error {
	raw := strings.TrimSpace(c.Text())
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return tghelpers.SendText(c, textBadAdminID)
	}
	a.states.Clear(c.Sender().ID)
	added, err := a.roster.Add(id)
	if err != nil {
		return tghelpers.SendText(c, textSaveFailed)
	}
	if !added {
		return tghelpers.SendText(c, textAdminExists)
	}
	return tghelpers.SendText(c, textAdminAdded)
}

func (a *App) handleRemoveAdmin(c tele.Context) error {
	return tghelpers.EditOrSend(c, textChooseAdmin, removeAdminKeyboard(a.roster.IDs()))
}

func (a *App) handleConfirmRemove(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(cb.Data), 10, 64)
	if err != nil {
		return tghelpers.EditOrSend(c, textBadAdminID)
	}
	removed, err := a.roster.Remove(id)
	if err != nil {
		return tghelpers.EditOrSend(c, textSaveFailed)
	}
	if !removed {
		return tghelpers.EditOrSend(c, textAdminNotInList)
	}
	return tghelpers.EditOrSend(c, textAdminRemoved)
}
