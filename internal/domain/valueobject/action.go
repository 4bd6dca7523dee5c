package valueobject

import "github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"

// Action - действие над заявкой.
type Action string

const (
	ActionAccept         Action = "accept"
	ActionDecline        Action = "decline"
	ActionMarkOrdered    Action = "mark_ordered"
	ActionMarkPickedUp   Action = "mark_picked_up"
	ActionMarkCompleted  Action = "mark_completed"
	ActionCancel         Action = "cancel"
	ActionOpenDispute    Action = "open_dispute"
	ActionResolveDispute Action = "resolve_dispute"
)

// Party - роль пользователя относительно конкретной заявки.
type Party string

const (
	PartyNone   Party = ""
	PartyBuyer  Party = "buyer"
	PartySeller Party = "seller"
)

func (p Party) Other() Party {
	switch p {
	case PartyBuyer:
		return PartySeller
	case PartySeller:
		return PartyBuyer
	}
	return PartyNone
}

// Rule описывает допустимые исходные статусы, роли и целевой статус действия.
// Пустой To означает, что целевой статус вычисляет сущность (двухфазное завершение).
type Rule struct {
	From    []RequestStatus
	Callers []Party
	To      RequestStatus
}

func (r Rule) AllowsFrom(s RequestStatus) bool {
	for _, from := range r.From {
		if from == s {
			return true
		}
	}
	return false
}

func (r Rule) AllowsCaller(p Party) bool {
	for _, c := range r.Callers {
		if c == p {
			return true
		}
	}
	return false
}

var transitionRules = map[Action]Rule{
	ActionAccept: {
		From:    []RequestStatus{RequestStatusRequested},
		Callers: []Party{PartySeller},
		To:      RequestStatusAccepted,
	},
	ActionDecline: {
		From:    []RequestStatus{RequestStatusRequested},
		Callers: []Party{PartySeller},
		To:      RequestStatusCancelled,
	},
	ActionMarkOrdered: {
		From:    []RequestStatus{RequestStatusAccepted},
		Callers: []Party{PartySeller},
		To:      RequestStatusOrdered,
	},
	ActionMarkPickedUp: {
		From:    []RequestStatus{RequestStatusOrdered},
		Callers: []Party{PartyBuyer},
		To:      RequestStatusPickedUp,
	},
	ActionMarkCompleted: {
		From:    []RequestStatus{RequestStatusPickedUp},
		Callers: []Party{PartyBuyer, PartySeller},
	},
	ActionCancel: {
		From:    []RequestStatus{RequestStatusRequested, RequestStatusAccepted},
		Callers: []Party{PartyBuyer, PartySeller},
		To:      RequestStatusCancelled,
	},
	ActionOpenDispute: {
		From:    []RequestStatus{RequestStatusOrdered, RequestStatusPickedUp, RequestStatusCompleted},
		Callers: []Party{PartyBuyer, PartySeller},
		To:      RequestStatusDisputed,
	},
}

// RuleFor возвращает правило перехода для действия.
func RuleFor(a Action) (Rule, bool) {
	r, ok := transitionRules[a]
	return r, ok
}

// TransitionActions возвращает все действия, которые меняют статус заявки.
func TransitionActions() []Action {
	return []Action{
		ActionAccept,
		ActionDecline,
		ActionMarkOrdered,
		ActionMarkPickedUp,
		ActionMarkCompleted,
		ActionCancel,
		ActionOpenDispute,
	}
}

func NewAction(action string) (Action, error) {
	a := Action(action)
	if _, ok := transitionRules[a]; !ok {
		return "", apperror.New(apperror.ErrCodeValidation, "неизвестное действие над заявкой")
	}
	return a, nil
}
