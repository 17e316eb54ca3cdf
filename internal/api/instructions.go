package api

import (
	"net/http"
	"time"

	"github.com/pritamp20/socialchain-ledger/internal/domain/model"
	"github.com/pritamp20/socialchain-ledger/internal/engine"
)

// instructionRequest is the common envelope. Caller identifies the
// signing wallet; the engine enforces what that wallet may do.
type instructionRequest struct {
	Caller string `json:"caller"`

	Community   string `json:"community,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MetadataURI string `json:"metadata_uri,omitempty"`

	TokenSymbol         string `json:"token_symbol,omitempty"`
	TokenDecimals       uint8  `json:"token_decimals,omitempty"`
	GovernanceThreshold uint8  `json:"governance_threshold,omitempty"`

	NewAdmin       *string `json:"new_admin,omitempty"`
	NewThreshold   *uint8  `json:"new_threshold,omitempty"`
	NewFeeBps      *uint16 `json:"new_fee_bps,omitempty"`
	NewName        *string `json:"new_name,omitempty"`
	NewMetadataURI *string `json:"new_metadata_uri,omitempty"`

	Title         string `json:"title,omitempty"`
	Kind          string `json:"kind,omitempty"`
	ExecutionData []byte `json:"execution_data,omitempty"`
	DurationSec   int64  `json:"duration_sec,omitempty"`
	Choice        string `json:"choice,omitempty"`

	Amount    uint64 `json:"amount,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Memo      string `json:"memo,omitempty"`

	CardID string `json:"card_id,omitempty"`

	Other    string  `json:"other,omitempty"`
	Member   string  `json:"member,omitempty"`
	Delta    int64   `json:"delta,omitempty"`
	Reason   string  `json:"reason,omitempty"`
	Metadata *string `json:"metadata,omitempty"`

	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Request   string `json:"request,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`

	StartTime    time.Time `json:"start_time,omitempty"`
	EndTime      time.Time `json:"end_time,omitempty"`
	MaxAttendees *uint32   `json:"max_attendees,omitempty"`
	TokenReward  *uint64   `json:"token_reward,omitempty"`
	Event        string    `json:"event,omitempty"`
}

func (s *Server) handleInstruction(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req instructionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Caller == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "caller is required"})
		return
	}

	ctx := r.Context()
	var (
		result any
		err    error
	)

	switch name {
	case "initializeCommunity":
		result, err = s.engine.InitializeCommunity(ctx, req.Caller, engine.InitializeCommunityParams{
			Name:                req.Name,
			TokenSymbol:         req.TokenSymbol,
			TokenDecimals:       req.TokenDecimals,
			GovernanceThreshold: req.GovernanceThreshold,
		})
	case "updateCommunityConfig":
		result, err = s.engine.UpdateCommunityConfig(ctx, req.Caller, engine.UpdateCommunityConfigParams{
			Community:    req.Community,
			NewAdmin:     req.NewAdmin,
			NewThreshold: req.NewThreshold,
			NewFeeBps:    req.NewFeeBps,
		})
	case "registerMember":
		result, err = s.engine.RegisterMember(ctx, req.Caller, engine.RegisterMemberParams{
			Community:   req.Community,
			Name:        req.Name,
			MetadataURI: req.MetadataURI,
		})
	case "updateMemberMetadata":
		result, err = s.engine.UpdateMemberProfile(ctx, req.Caller, engine.UpdateMemberProfileParams{
			Community:      req.Community,
			NewName:        req.NewName,
			NewMetadataURI: req.NewMetadataURI,
		})
	case "createProposal":
		result, err = s.engine.CreateProposal(ctx, req.Caller, engine.CreateProposalParams{
			Community:      req.Community,
			Title:          req.Title,
			Description:    req.Description,
			Kind:           model.ProposalKind(req.Kind),
			ExecutionData:  req.ExecutionData,
			VotingDuration: time.Duration(req.DurationSec) * time.Second,
		})
	case "castVote":
		result, err = s.engine.CastVote(ctx, req.Caller, engine.CastVoteParams{
			Community: req.Community,
			Title:     req.Title,
			Choice:    model.VoteChoice(req.Choice),
		})
	case "finalizeProposal":
		result, err = s.engine.FinalizeProposal(ctx, req.Caller, engine.ProposalRef{Community: req.Community, Title: req.Title})
	case "executeProposal":
		result, err = s.engine.ExecuteProposal(ctx, req.Caller, engine.ProposalRef{Community: req.Community, Title: req.Title})
	case "cancelProposal":
		result, err = s.engine.CancelProposal(ctx, req.Caller, engine.ProposalRef{Community: req.Community, Title: req.Title})
	case "createCommunityToken":
		result, err = s.engine.CreateCommunityToken(ctx, req.Caller, req.Community, req.Amount)
	case "mintTokensToMember":
		err = s.engine.MintTokensToMember(ctx, req.Caller, req.Community, req.Member, req.Amount)
	case "transferTokens":
		err = s.engine.TransferTokens(ctx, req.Caller, engine.TransferTokensParams{
			Community: req.Community,
			Recipient: req.Recipient,
			Amount:    req.Amount,
			Memo:      req.Memo,
		})
	case "depositToTreasury":
		err = s.engine.DepositToTreasury(ctx, req.Caller, req.Community, req.Amount)
	case "withdrawFromTreasury":
		err = s.engine.WithdrawFromTreasury(ctx, req.Caller, engine.WithdrawFromTreasuryParams{
			Community:     req.Community,
			ProposalTitle: req.Title,
			Recipient:     req.Recipient,
			Amount:        req.Amount,
		})
	case "burnTokens":
		err = s.engine.BurnTokens(ctx, req.Caller, req.Community, req.Amount)
	case "createNfcCard":
		result, err = s.engine.CreateNfcCard(ctx, req.Caller, req.Community, req.CardID, req.MetadataURI)
	case "authenticateNfc":
		err = s.engine.AuthenticateNfc(ctx, req.Caller, req.Community, req.CardID)
	case "transferNfcCard":
		err = s.engine.TransferNfcCard(ctx, req.Caller, req.Community, req.CardID, req.Recipient)
	case "revokeNfcCard":
		err = s.engine.RevokeNfcCard(ctx, req.Caller, req.Community, req.CardID)
	case "createConnection":
		result, err = s.engine.CreateConnection(ctx, req.Caller, engine.CreateConnectionParams{
			Community: req.Community,
			Other:     req.Other,
			Kind:      model.ConnectionKind(req.Kind),
			Metadata:  req.Metadata,
		})
	case "recordInteraction":
		err = s.engine.RecordInteraction(ctx, req.Caller, req.Community, req.Other, model.InteractionKind(req.Kind))
	case "updateConnectionMetadata":
		err = s.engine.UpdateConnectionMetadata(ctx, req.Caller, req.Community, req.Other, req.Metadata)
	case "removeConnection":
		err = s.engine.RemoveConnection(ctx, req.Caller, req.Community, req.Other)
	case "updateReputation":
		err = s.engine.UpdateReputation(ctx, req.Caller, engine.UpdateReputationParams{
			Community: req.Community,
			Member:    req.Member,
			Delta:     req.Delta,
			Reason:    req.Reason,
		})
	case "createPaymentRequest":
		result, err = s.engine.CreatePaymentRequest(ctx, req.Caller, engine.CreatePaymentRequestParams{
			Community:   req.Community,
			From:        req.From,
			To:          req.To,
			Amount:      req.Amount,
			Description: req.Description,
			ExpiresIn:   time.Duration(req.DurationSec) * time.Second,
			Timestamp:   req.Timestamp,
		})
	case "settlePaymentRequest":
		err = s.engine.SettlePaymentRequest(ctx, req.Caller, req.Community, req.Request)
	case "cancelPaymentRequest":
		err = s.engine.CancelPaymentRequest(ctx, req.Caller, req.Community, req.Request)
	case "createEvent":
		result, err = s.engine.CreateEvent(ctx, req.Caller, engine.CreateEventParams{
			Community:    req.Community,
			Name:         req.Name,
			Description:  req.Description,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			MaxAttendees: req.MaxAttendees,
			TokenReward:  req.TokenReward,
		})
	case "recordAttendance":
		result, err = s.engine.RecordAttendance(ctx, req.Caller, req.Community, req.Event)
	case "closeEvent":
		err = s.engine.CloseEvent(ctx, req.Caller, req.Community, req.Event)
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown instruction " + name})
		return
	}

	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instructionResponse(name, result))
}

type appliedResponse struct {
	Instruction string `json:"instruction"`
	Applied     bool   `json:"applied"`
	Record      any    `json:"record,omitempty"`
}

func instructionResponse(name string, result any) appliedResponse {
	resp := appliedResponse{Instruction: name, Applied: true}
	switch v := result.(type) {
	case nil:
	case *model.Community:
		resp.Record = communityResponseFrom(v)
	case *model.Member:
		resp.Record = memberResponseFrom(v)
	case *model.Proposal:
		resp.Record = proposalResponseFrom(v)
	case *model.Vote:
		resp.Record = voteResponseFrom(v)
	case *model.TokenMint:
		resp.Record = tokenMintResponseFrom(v)
	case *model.NfcCard:
		resp.Record = nfcCardResponseFrom(v)
	case *model.Connection:
		resp.Record = connectionResponseFrom(v)
	case *model.PaymentRequest:
		resp.Record = paymentRequestResponseFrom(v)
	case *model.Event:
		resp.Record = eventResponseFrom(v)
	case *model.Attendance:
		resp.Record = attendanceResponseFrom(v)
	default:
		resp.Record = v
	}
	return resp
}
