package bot

import (
	"errors"
	"strconv"
	"strings"

	"github.com/m3rciful/servicebot/internal/fsm"
	"github.com/m3rciful/servicebot/internal/orders"
	tg "github.com/m3rciful/servicebot/internal/telegram"
	tghelpers "github.com/m3rciful/servicebot/internal/telegram/helpers"
	"github.com/m3rciful/servicebot/internal/validate"

	tele "gopkg.in/telebot.v4"
)

func (a *App) registerCommands() {
	a.reg.RegisterCommand("/start", tg.Command{
		Handler:     a.handleStart,
		Description: "Начать работу с ботом",
	})
}

func (a *App) registerUserCallbacks() {
	_ = a.reg.RegisterCallback(cbStartWork, a.handleStartWork)
	_ = a.reg.RegisterCallback(cbServices, a.handleServices)
	_ = a.reg.RegisterCallback(cbShowFAQ, a.handleFAQ)
	_ = a.reg.RegisterCallback(cbBackToMain, a.handleBackToMain)
	_ = a.reg.RegisterCallback(cbBackToStart, a.handleBackToStart)

	_ = a.reg.RegisterCallback(cbServiceComputers, staticText(textServiceComputers))
	_ = a.reg.RegisterCallback(cbServiceMounting, staticText(textServiceMounting))
	_ = a.reg.RegisterCallback(cbServiceVisit, staticText(textServiceVisit))

	_ = a.reg.RegisterCallback(cbApplyRequest, a.handleApplyRequest)
	_ = a.reg.RegisterCallback(cbStatusRequest, a.handleStatusRequest)
	_ = a.reg.RegisterCallback(cbEditRequest, a.handleEditRequest)
	_ = a.reg.RegisterCallback(cbCancelRequest, a.handleCancelRequest)
	_ = a.reg.RegisterCallback(cbLeaveFeedback, a.handleLeaveFeedback)

	_ = a.reg.RegisterCallback(cbEditFullName, a.editFieldHandler(orders.FieldFullName))
	_ = a.reg.RegisterCallback(cbEditAddress, a.editFieldHandler(orders.FieldAddress))
	_ = a.reg.RegisterCallback(cbEditPhone, a.editFieldHandler(orders.FieldPhoneNumber))
	_ = a.reg.RegisterCallback(cbEditReason, a.editFieldHandler(orders.FieldReason))
}

func (a *App) registerUserStates() {
	a.states.RegisterHandler(fsm.StateOrderName, a.stateOrderName)
	a.states.RegisterHandler(fsm.StateOrderAddress, a.stateOrderAddress)
	a.states.RegisterHandler(fsm.StateOrderPhone, a.stateOrderPhone)
	a.states.RegisterHandler(fsm.StateOrderReason, a.stateOrderReason)
	a.states.RegisterHandler(fsm.StateStatusID, a.stateStatusID)
	a.states.RegisterHandler(fsm.StateEditID, a.stateEditID)
	a.states.RegisterHandler(fsm.StateEditValue, a.stateEditValue)
	a.states.RegisterHandler(fsm.StateCancelID, a.stateCancelID)
	a.states.RegisterHandler(fsm.StateFeedbackID, a.stateFeedbackID)
	a.states.RegisterHandler(fsm.StateFeedbackText, a.stateFeedbackText)
}

func staticText(text string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, text)
	}
}

func (a *App) sendMainMenu(c tele.Context) error {
	return tghelpers.SendKB(c, textMainMenu, mainMenuKeyboard(a.isAdmin(c)))
}

func (a *App) handleStart(c tele.Context) error {
	a.states.Clear(c.Sender().ID)
	if a.isAdmin(c) {
		return tghelpers.SendKB(c, textWelcomeAdmin, startKeyboard(true))
	}
	return tghelpers.SendKB(c, textWelcome, startKeyboard(false))
}

func (a *App) handleStartWork(c tele.Context) error {
	return tghelpers.EditOrSend(c, textMainMenu, mainMenuKeyboard(a.isAdmin(c)))
}

func (a *App) handleServices(c tele.Context) error {
	return tghelpers.EditOrSend(c, textServices, servicesKeyboard())
}

func (a *App) handleFAQ(c tele.Context) error {
	return tghelpers.EditOrSend(c, textFAQ, mainMenuKeyboard(a.isAdmin(c)))
}

func (a *App) handleBackToMain(c tele.Context) error {
	a.states.Clear(c.Sender().ID)
	return tghelpers.EditOrSend(c, textMainMenu, mainMenuKeyboard(a.isAdmin(c)))
}

func (a *App) handleBackToStart(c tele.Context) error {
	a.states.Clear(c.Sender().ID)
	return tghelpers.EditOrSend(c, textWelcome, startKeyboard(a.isAdmin(c)))
}

// Order intake flow.

func (a *App) handleApplyRequest(c tele.Context) error {
	a.states.StartFlow(c.Sender().ID, fsm.FlowOrder, fsm.StateOrderName)
	return tghelpers.EditOrSend(c, textAskFullName)
}

func (a *App) stateOrderName(c tele.Context) error {
	name := validate.Sanitize(c.Text())
	if name == "" {
		return tghelpers.SendText(c, textAskFullName)
	}
	userID := c.Sender().ID
	a.states.Mutate(userID, func(s *fsm.Session) { s.Order.FullName = name })
	a.states.SetState(userID, fsm.StateOrderAddress)
	return tghelpers.SendText(c, textAskAddress)
}

func (a *App) stateOrderAddress(c tele.Context) error {
	address := validate.Sanitize(c.Text())
	if !validate.IsValidAddress(address) {
		return tghelpers.SendText(c, textBadAddress)
	}
	userID := c.Sender().ID
	a.states.Mutate(userID, func(s *fsm.Session) { s.Order.Address = address })
	a.states.SetState(userID, fsm.StateOrderPhone)
	return tghelpers.SendText(c, textAskPhone)
}

func (a *App) stateOrderPhone(c tele.Context) error {
	phone := strings.TrimSpace(c.Text())
	if !validate.IsValidPhone(phone) {
		return tghelpers.SendText(c, textBadPhone)
	}
	userID := c.Sender().ID
	a.states.Mutate(userID, func(s *fsm.Session) { s.Order.PhoneNumber = phone })
	a.states.SetState(userID, fsm.StateOrderReason)
	return tghelpers.SendText(c, textAskReason)
}

func (a *App) stateOrderReason(c tele.Context) error {
	reason := validate.Sanitize(c.Text())
	if reason == "" {
		return tghelpers.SendText(c, textAskReason)
	}
	userID := c.Sender().ID
	sess := a.states.Snapshot(userID)

	ctx := tghelpers.BuildContext(c)
	order, err := a.svc.Create(ctx, orders.CreateParams{
		FullName:    sess.Order.FullName,
		Address:     sess.Order.Address,
		PhoneNumber: sess.Order.PhoneNumber,
		Reason:      reason,
		UserID:      userID,
	})
	if err != nil {
		return tghelpers.SendText(c, textSaveFailed)
	}
	a.states.Clear(userID)
	if err := tghelpers.SendText(c, orderCreatedText(order)); err != nil {
		return err
	}
	return a.sendMainMenu(c)
}

// Status check flow.

func (a *App) handleStatusRequest(c tele.Context) error {
	a.states.StartFlow(c.Sender().ID, fsm.FlowStatus, fsm.StateStatusID)
	return tghelpers.EditOrSend(c, textAskStatusRequestID)
}

func (a *App) stateStatusID(c tele.Context) error {
	id, ok := parseOrderID(c.Text())
	ctx := tghelpers.BuildContext(c)
	if !ok {
		return tghelpers.SendText(c, textBadRequestID)
	}
	order, err := a.svc.GetByID(ctx, id)
	if err != nil {
		return tghelpers.SendText(c, textBadRequestID)
	}
	// Non-admins may only look up their own orders. Foreign ids answer
	// the same as unknown ones so existence is not leaked.
	if order.UserID != c.Sender().ID && !a.isAdmin(c) {
		return tghelpers.SendText(c, textBadRequestID)
	}
	a.states.Clear(c.Sender().ID)
	if err := tghelpers.SendText(c, orderStatusText(order)); err != nil {
		return err
	}
	return a.sendMainMenu(c)
}

// Edit flow.

func (a *App) handleEditRequest(c tele.Context) error {
	a.states.StartFlow(c.Sender().ID, fsm.FlowEdit, fsm.StateEditID)
	return tghelpers.EditOrSend(c, textAskRequestID)
}

func (a *App) stateEditID(c tele.Context) error {
	id, ok := parseOrderID(c.Text())
	ctx := tghelpers.BuildContext(c)
	if !ok || !a.svc.Exists(ctx, id) {
		return tghelpers.SendText(c, textBadRequestID)
	}
	userID := c.Sender().ID
	a.states.Mutate(userID, func(s *fsm.Session) { s.Edit.OrderID = id })
	a.states.SetState(userID, fsm.StateEditField)
	return tghelpers.SendKB(c, textChooseEditField, editFieldKeyboard())
}

func (a *App) editFieldHandler(field string) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		if a.states.GetState(userID) != fsm.StateEditField {
			return a.sendMainMenu(c)
		}
		a.states.Mutate(userID, func(s *fsm.Session) { s.Edit.Field = field })
		a.states.SetState(userID, fsm.StateEditValue)
		return tghelpers.EditOrSend(c, askEditValueText(field))
	}
}

func askEditValueText(field string) string {
	switch field {
	case orders.FieldFullName:
		return textAskNewName
	case orders.FieldAddress:
		return textAskNewAddress
	case orders.FieldPhoneNumber:
		return textAskNewPhone
	default:
		return textAskNewReason
	}
}

func (a *App) stateEditValue(c tele.Context) error {
	userID := c.Sender().ID
	sess := a.states.Snapshot(userID)

	var value string
	switch sess.Edit.Field {
	case orders.FieldPhoneNumber:
		value = strings.TrimSpace(c.Text())
		if !validate.IsValidPhone(value) {
			return tghelpers.SendText(c, textBadPhone)
		}
	case orders.FieldAddress:
		value = validate.Sanitize(c.Text())
		if !validate.IsValidAddress(value) {
			return tghelpers.SendText(c, textBadAddress)
		}
	default:
		value = validate.Sanitize(c.Text())
		if value == "" {
			return tghelpers.SendText(c, askEditValueText(sess.Edit.Field))
		}
	}

	ctx := tghelpers.BuildContext(c)
	order, err := a.svc.UpdateField(ctx, sess.Edit.OrderID, sess.Edit.Field, value)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			return tghelpers.SendText(c, textBadRequestID)
		}
		return tghelpers.SendText(c, textSaveFailed)
	}
	a.states.Clear(userID)
	if err := tghelpers.SendText(c, orderUpdatedText(order)); err != nil {
		return err
	}
	return a.sendMainMenu(c)
}

// Cancel flow.

func (a *App) handleCancelRequest(c tele.Context) error {
	a.states.StartFlow(c.Sender().ID, fsm.FlowCancel, fsm.StateCancelID)
	return tghelpers.EditOrSend(c, textAskCancelRequestID)
}

func (a *App) stateCancelID(c tele.Context) error {
	id, ok := parseOrderID(c.Text())
	ctx := tghelpers.BuildContext(c)
	if !ok || !a.svc.Exists(ctx, id) {
		return tghelpers.SendText(c, textBadRequestID)
	}
	if err := a.svc.Cancel(ctx, id); err != nil {
		return tghelpers.SendText(c, textSaveFailed)
	}
	a.states.Clear(c.Sender().ID)
	if err := tghelpers.SendText(c, textOrderCancelled); err != nil {
		return err
	}
	return a.sendMainMenu(c)
}

// Feedback flow.

func (a *App) handleLeaveFeedback(c tele.Context) error {
	a.states.StartFlow(c.Sender().ID, fsm.FlowFeedback, fsm.StateFeedbackID)
	return tghelpers.EditOrSend(c, textAskFeedbackID)
}

func (a *App) stateFeedbackID(c tele.Context) error {
	id, ok := parseOrderID(c.Text())
	ctx := tghelpers.BuildContext(c)
	if !ok || !a.svc.Exists(ctx, id) {
		return tghelpers.SendText(c, textBadRequestID)
	}
	userID := c.Sender().ID
	a.states.Mutate(userID, func(s *fsm.Session) { s.Feedback.OrderID = id })
	a.states.SetState(userID, fsm.StateFeedbackText)
	return tghelpers.SendText(c, textAskFeedback)
}

func (a *App) stateFeedbackText(c tele.Context) error {
	text := validate.Sanitize(c.Text())
	if text == "" {
		return tghelpers.SendText(c, textAskFeedback)
	}
	userID := c.Sender().ID
	sess := a.states.Snapshot(userID)

	ctx := tghelpers.BuildContext(c)
	if _, err := a.svc.AddFeedback(ctx, sess.Feedback.OrderID, text); err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			return tghelpers.SendText(c, textBadRequestID)
		}
		return tghelpers.SendText(c, textSaveFailed)
	}
	a.states.Clear(userID)
	if err := tghelpers.SendText(c, textFeedbackThanks); err != nil {
		return err
	}
	return a.sendMainMenu(c)
}

func parseOrderID(text string) (int, bool) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "#"))
	id, err := strconv.Atoi(text)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
