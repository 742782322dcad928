package events

import (
	"github.com/shopspring/decimal"

	"github.com/smartchain/surplusnet/pkg/domain/entities"
)

const (
	SurplusListedEvent = "surplus.listed"
	NeedPostedEvent    = "need.posted"

	MatchGeneratedEvent = "match.generated"
	MatchProposedEvent  = "match.proposed"
	MatchAcceptedEvent  = "match.accepted"
	MatchRejectedEvent  = "match.rejected"

	TransferRecordedEvent = "transfer.recorded"
)

type SurplusListed struct {
	Item entities.SurplusItem `json:"item"`
}

type NeedPosted struct {
	Need entities.Need `json:"need"`
}

type MatchGenerated struct {
	Match entities.Match `json:"match"`
}

type MatchProposed struct {
	Match      entities.Match      `json:"match"`
	ProposedBy entities.LocationID `json:"proposed_by"`
}

type MatchAccepted struct {
	Match       entities.Match    `json:"match"`
	Transferred entities.Quantity `json:"transferred"`
}

type MatchRejected struct {
	Match entities.Match `json:"match"`
}

type TransferRecorded struct {
	Connection entities.Connection `json:"connection"`
	Value      decimal.Decimal     `json:"value"`
}

func NewSurplusListedEvent(item entities.SurplusItem) Event {
	return NewEvent(SurplusListedEvent, item.ID, SurplusListed{Item: item})
}

func NewNeedPostedEvent(need entities.Need) Event {
	return NewEvent(NeedPostedEvent, need.ID, NeedPosted{Need: need})
}

func NewMatchGeneratedEvent(match entities.Match) Event {
	return NewEvent(MatchGeneratedEvent, match.ID, MatchGenerated{Match: match})
}

func NewMatchProposedEvent(match entities.Match, proposedBy entities.LocationID) Event {
	return NewEvent(MatchProposedEvent, match.ID, MatchProposed{
		Match:      match,
		ProposedBy: proposedBy,
	})
}

func NewMatchAcceptedEvent(match entities.Match, transferred entities.Quantity) Event {
	return NewEvent(MatchAcceptedEvent, match.ID, MatchAccepted{
		Match:       match,
		Transferred: transferred,
	})
}

func NewMatchRejectedEvent(match entities.Match) Event {
	return NewEvent(MatchRejectedEvent, match.ID, MatchRejected{Match: match})
}

func NewTransferRecordedEvent(conn entities.Connection, value decimal.Decimal) Event {
	return NewEvent(TransferRecordedEvent, conn.ID, TransferRecorded{
		Connection: conn,
		Value:      value,
	})
}
