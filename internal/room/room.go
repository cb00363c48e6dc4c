// Package room implements the per-table state machine: lobby roster,
// turn lifecycle, claim-window arbitration, bot substitution, and
// reconnection, all serialized through a single actor goroutine per
// room so no two client actions ever race against each other.
package room

import (
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"github.com/lamyinia/mahjong-room-server/internal/auth"
	"github.com/lamyinia/mahjong-room-server/internal/config"
	"github.com/lamyinia/mahjong-room-server/internal/logging"
	"github.com/lamyinia/mahjong-room-server/internal/mahjong"
	"github.com/lamyinia/mahjong-room-server/internal/protocol"
	"github.com/lamyinia/mahjong-room-server/internal/view"

	"github.com/charmbracelet/log"
)

// maxNameLength bounds a display name so a lobby roster can never be
// pushed off-screen by one long value.
const maxNameLength = 16

// normalizeName trims surrounding whitespace and caps the result to
// maxNameLength runes.
func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}
	return name
}

// roomPhase is the lobby/table-level lifecycle stage, distinct from
// mahjong.Phase which tracks a single hand in progress.
type roomPhase uint8

const (
	phaseLobby roomPhase = iota
	phasePlaying
	phaseClaimWindow
	phaseEndOfRound
)

// reconnectTokenIndexTTL bounds how long the manager's token→room
// index keeps routing a token after it was minted, independent of the
// JWT's own expiry — a generous outer bound since a token's signature
// is the real expiry check.
const reconnectTokenIndexTTL = 24 * time.Hour

// seatSlot is lobby-side bookkeeping for one of the four seats, kept
// alongside (and before) the mahjong.Player that exists only once a
// hand is dealt.
type seatSlot struct {
	conn           ClientSender
	name           string
	avatar         string
	ready          bool
	reconnectToken string
}

func (s seatSlot) occupied() bool {
	return s.name != ""
}

type pendingSelfKong struct {
	seat int
	opt  mahjong.SelfKongOption
}

// Room is one table: four seats, one event queue, one goroutine.
// Every field below is touched only from the actor goroutine once Run
// has started; NotifyEvent is the only method safe to call from other
// goroutines.
type Room struct {
	ID string

	events chan GameEvent
	done   chan struct{}
	closed bool

	seats    [4]seatSlot
	hostSeat int

	phase roomPhase
	state *mahjong.GameState

	cw *claimWindow

	windowSeq       uint64
	botScheduleSeq  uint64
	botTimer        *timerHandle
	pendingBotFn    func()
	graceTimers     [4]*timerHandle
	graceSeq        [4]uint64
	pendingSelfKong *pendingSelfKong

	lastRoundHadWinner bool
	lastWinnerSeat      int

	rng    *rand.Rand
	bot    *mahjong.BotPolicy
	tokens *auth.Issuer
	reg    TokenRegistrar
	cfg    config.RoomConf

	log *log.Logger
}

func NewRoom(id string, cfg config.RoomConf, tokens *auth.Issuer, reg TokenRegistrar, seed int64) *Room {
	return &Room{
		ID:        id,
		events:    make(chan GameEvent, 64),
		done:      make(chan struct{}),
		hostSeat:  -1,
		phase:     phaseLobby,
		rng:       rand.New(rand.NewSource(seed)),
		bot:       mahjong.NewBotPolicy(rand.New(rand.NewSource(seed + 1))),
		tokens:    tokens,
		reg:       reg,
		cfg:       cfg,
		log:       logging.With("room", id),
	}
}

// Run starts the room's single actor goroutine.
func (r *Room) Run() {
	go r.actorLoop()
}

// NotifyEvent enqueues ev for processing on the actor goroutine. Safe
// to call from any goroutine, including after the room has closed (the
// event is silently dropped).
func (r *Room) NotifyEvent(ev GameEvent) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}

// Close stops the actor loop and cancels every pending timer.
func (r *Room) Close() {
	select {
	case <-r.done:
		return
	default:
		close(r.done)
	}
}

// Empty reports whether the room has no connected human and no
// reconnect grace in flight — a candidate for the manager's sweep.
func (r *Room) Empty() bool {
	for i := 0; i < 4; i++ {
		if r.seats[i].conn != nil {
			return false
		}
		if r.state != nil && r.state.Players[i].Status == mahjong.HumanDisconnected {
			return false
		}
	}
	return true
}

func (r *Room) actorLoop() {
	for {
		select {
		case ev := <-r.events:
			r.process(ev)
		case <-r.done:
			r.botTimer.Stop()
			for i := range r.graceTimers {
				r.graceTimers[i].Stop()
			}
			if r.cw != nil {
				r.cw.timer.Stop()
			}
			return
		}
	}
}

func (r *Room) process(ev GameEvent) {
	switch e := ev.(type) {
	case JoinEvent:
		r.handleJoin(e)
	case ReadyEvent:
		r.handleReady(e)
	case StartGameEvent:
		r.handleStartGame(e)
	case ActionEvent:
		r.handleAction(e)
	case NextRoundEvent:
		r.handleNextRound(e)
	case LeaveEvent:
		r.handleLeave(e)
	case DisconnectEvent:
		r.handleDisconnect(e)
	case claimWindowTimeoutEvent:
		r.handleClaimWindowTimeout(e)
	case botActionTimeoutEvent:
		r.handleBotActionTimeout(e)
	case disconnectGraceTimeoutEvent:
		r.handleDisconnectGraceTimeout(e)
	default:
		r.log.Warnf("unhandled event type %T", ev)
	}
}

// ---- lobby -----------------------------------------------------------

func (r *Room) firstEmptySeat() int {
	for i := 0; i < 4; i++ {
		if !r.seats[i].occupied() {
			return i
		}
	}
	return -1
}

func (r *Room) handleJoin(e JoinEvent) {
	if e.ReconnectToken != "" {
		claims, err := r.tokens.Parse(e.ReconnectToken)
		if err == nil && claims.RoomID == r.ID && claims.SeatIndex >= 0 && claims.SeatIndex < 4 {
			r.handleReconnect(claims.SeatIndex, e.Conn)
			return
		}
		if r.phase != phaseLobby {
			r.rejectJoin(e.Conn, "room is full or a game is already in progress")
			return
		}
		// Invalid token but the lobby is still open: fall through and
		// treat this as a fresh arrival.
	}

	if r.phase != phaseLobby {
		r.rejectJoin(e.Conn, "room is full or a game is already in progress")
		return
	}
	seat := r.firstEmptySeat()
	if seat == -1 {
		r.rejectJoin(e.Conn, "room is full")
		return
	}
	token, err := r.tokens.Mint(r.ID, seat)
	if err != nil {
		r.log.Errorf("minting reconnect token: %v", err)
		r.rejectJoin(e.Conn, "internal error")
		return
	}
	r.seats[seat] = seatSlot{conn: e.Conn, name: normalizeName(e.Name), avatar: e.Avatar, reconnectToken: token}
	e.Conn.AssignSeat(seat)
	if r.reg != nil {
		r.reg.Register(token, r.ID, reconnectTokenIndexTTL)
	}
	if r.hostSeat == -1 {
		r.hostSeat = seat
	}
	r.broadcastRoomState()
}

func (r *Room) handleReconnect(seat int, conn ClientSender) {
	if r.phase == phaseLobby {
		if r.seats[seat].occupied() && r.seats[seat].conn == nil {
			r.seats[seat].conn = conn
			conn.AssignSeat(seat)
			r.broadcastRoomState()
			return
		}
		r.rejectJoin(conn, "seat is not available")
		return
	}

	player := r.state.Players[seat]
	if player.Status == mahjong.HumanConnected {
		r.rejectJoin(conn, "seat is already connected")
		return
	}
	r.graceTimers[seat].Stop()
	player.Status = mahjong.HumanConnected
	r.seats[seat].conn = conn
	conn.AssignSeat(seat)
	r.broadcastPlayerReconnected(seat)
	r.sendGameState(seat)
	if r.phase == phaseClaimWindow && r.cw != nil {
		if a, has := r.cw.available[seat]; has && !r.cw.responses[seat].responded {
			r.sendClaimWindow(seat, a)
		}
	}
}

func (r *Room) rejectJoin(conn ClientSender, msg string) {
	conn.Send(encode(protocol.NewError(msg)))
	conn.Close()
}

func (r *Room) handleReady(e ReadyEvent) {
	if r.phase != phaseLobby || !r.seats[e.SeatIndex].occupied() {
		return
	}
	r.seats[e.SeatIndex].ready = e.IsReady
	r.broadcastRoomState()
}

// handleStartGame is accepted only from the host seat, and only while
// still in the lobby; empty seats are filled with bots so a table can
// start short-handed instead of blocking on a full roster.
func (r *Room) handleStartGame(e StartGameEvent) {
	if r.phase != phaseLobby || e.SeatIndex != r.hostSeat {
		return
	}

	wall := mahjong.NewWall(r.rng)
	gs := mahjong.NewGameState(wall, mahjong.East, 1)
	botN := 0
	for i := 0; i < 4; i++ {
		p := gs.Players[i]
		p.SeatWind = mahjong.Wind(i)
		if r.seats[i].occupied() {
			p.Name = r.seats[i].name
			p.Avatar = r.seats[i].avatar
			p.Status = mahjong.HumanConnected
		} else {
			botN++
			p.Name = botName(botN)
			p.Status = mahjong.BotOwned
		}
	}

	ns, ok := mahjong.DealInitial(gs)
	if !ok {
		r.log.Error("initial deal exhausted the wall; aborting start")
		return
	}
	r.state = ns
	r.phase = phasePlaying
	r.broadcastGameStart()
	r.beginTurn()
}

func botName(n int) string {
	names := [...]string{"Bot 1", "Bot 2", "Bot 3"}
	if n >= 1 && n <= len(names) {
		return names[n-1]
	}
	return "Bot"
}

// ---- leave / disconnect / reconnection grace ---------------------------

func (r *Room) handleLeave(e LeaveEvent) {
	if r.phase == phaseLobby {
		r.seats[e.SeatIndex] = seatSlot{}
		if r.hostSeat == e.SeatIndex {
			r.hostSeat = r.firstOccupiedSeat()
		}
		r.broadcastRoomState()
		return
	}
	r.markDisconnected(e.SeatIndex, true)
}

func (r *Room) handleDisconnect(e DisconnectEvent) {
	if r.phase == phaseLobby {
		r.seats[e.SeatIndex].conn = nil
		r.broadcastRoomState()
		return
	}
	r.markDisconnected(e.SeatIndex, false)
}

func (r *Room) firstOccupiedSeat() int {
	for i := 0; i < 4; i++ {
		if r.seats[i].occupied() {
			return i
		}
	}
	return -1
}

// markDisconnected handles a human leaving mid-game: an explicit leave
// hands the seat to the bot policy permanently, while an unexpected
// drop starts a grace timer during which the seat is bot-driven but
// can still be reclaimed by a reconnect.
func (r *Room) markDisconnected(seat int, explicitLeave bool) {
	player := r.state.Players[seat]
	if player.Status == mahjong.BotOwned {
		return
	}
	r.seats[seat].conn = nil
	if explicitLeave {
		player.Status = mahjong.BotOwned
		r.graceTimers[seat].Stop()
	} else {
		player.Status = mahjong.HumanDisconnected
		r.startGraceTimer(seat)
	}
	r.broadcastPlayerDisconnected(seat)

	if r.phase == phaseClaimWindow && r.cw != nil {
		if _, has := r.cw.available[seat]; has && !r.cw.responses[seat].responded {
			r.cw.responses[seat] = claimResponse{responded: true, action: protocol.ActionPass}
			if r.cw.allResponded() {
				r.cw.timer.Stop()
				r.finishClaimWindow()
			}
		}
	} else if r.phase == phasePlaying && r.state.CurrentPlayer == seat {
		r.resumeTurn(seat)
	}
}

func (r *Room) startGraceTimer(seat int) {
	r.graceTimers[seat].Stop()
	r.graceSeq[seat]++
	seq := r.graceSeq[seat]
	r.graceTimers[seat] = scheduleAfter(r.events, r.cfg.DisconnectGrace, func() GameEvent {
		return disconnectGraceTimeoutEvent{seatIndex: seat, graceID: seq}
	})
}

func (r *Room) handleDisconnectGraceTimeout(e disconnectGraceTimeoutEvent) {
	if e.graceID != r.graceSeq[e.seatIndex] {
		return
	}
	if r.state == nil {
		return
	}
	player := r.state.Players[e.seatIndex]
	if player.Status == mahjong.HumanDisconnected {
		player.Status = mahjong.BotOwned
		r.log.With("seat", e.seatIndex).Info("disconnect grace expired; seat is now bot-owned")
	}
}

// ---- turn lifecycle ----------------------------------------------------

// isBotDriven reports whether this seat's next decision should be made
// by the bot policy: true both for a permanently bot-owned seat and
// for a human mid-disconnect-grace, so play keeps moving either way.
func isBotDriven(p *mahjong.Player) bool {
	return p.Status != mahjong.HumanConnected
}

// beginTurn resumes play at the current player, whichever point of the
// turn they are actually at — this covers both a fresh turn (about to
// draw) and the dealer's opening turn and a bot-substitution mid-turn,
// where the seat may already hold its post-draw tile count.
func (r *Room) beginTurn() {
	r.resumeTurn(r.state.CurrentPlayer)
}

func (r *Room) resumeTurn(seat int) {
	player := r.state.Players[seat]
	if len(player.Hand) == 13-3*player.MeldCount() {
		if isBotDriven(player) {
			r.scheduleBotAction(func() { r.doDraw(seat) })
			return
		}
		r.sendYourTurn(seat, protocol.PhaseHumanNeedsDraw, nil)
		return
	}
	r.postDrawDecision(seat)
}

func (r *Room) doDraw(seat int) {
	if r.phase != phasePlaying || seat != r.state.CurrentPlayer {
		return
	}
	before := len(r.state.Players[seat].Hand)
	ns, ok := mahjong.ApplyDraw(r.state)
	if !ok {
		return
	}
	r.state = ns
	if len(r.state.Players[seat].Hand) == before {
		r.endRoundDraw()
		return
	}
	r.broadcastGameState()
	r.postDrawDecision(seat)
}

// postDrawDecision is reached immediately after a draw (turn draw or
// kong replacement): a self-draw win and a self-kong are both offered
// before a discard is required.
func (r *Room) postDrawDecision(seat int) {
	player := r.state.Players[seat]
	patterns, _ := mahjong.CalculateTai(player, true, r.state.RoundWind)
	canWin := mahjong.CheckWin(player.Hand, player.Melds) && len(patterns) > 0
	selfKongOpt, canSelfKong := mahjong.CanSelfKong(player)

	if isBotDriven(player) {
		if canWin {
			r.resolveWin(seat, true, mahjong.NoPlayer)
			return
		}
		if canSelfKong {
			r.applySelfKongAndContinue(seat, selfKongOpt)
			return
		}
		discard := r.bot.ChooseDiscard(player.Hand)
		r.scheduleBotAction(func() { r.doDiscard(seat, discard.ID) })
		return
	}

	r.sendYourTurn(seat, protocol.PhaseHumanNeedsDiscard, map[string]bool{
		"canWin":      canWin,
		"canSelfKong": canSelfKong,
	})
}

func (r *Room) doDiscard(seat int, tileID string) {
	if r.phase != phasePlaying || seat != r.state.CurrentPlayer {
		return
	}
	ns, ok := mahjong.ApplyDiscard(r.state, tileID)
	if !ok {
		return
	}
	r.state = ns
	r.broadcastGameState()
	r.openDiscardClaimWindow()
}

// applySelfKongAndContinue commits a self-kong, first checking whether
// promoting a pong to a kong exposes the robbed tile to another
// player's win: the kong only completes once every potential robber
// has passed on that tile.
func (r *Room) applySelfKongAndContinue(seat int, opt mahjong.SelfKongOption) {
	if opt.Kind == mahjong.SelfKongPromote {
		synthetic := mahjong.Tile{ID: "robbed-kong", Def: opt.Def}
		robbers := make(map[int]AvailableClaim)
		for i := 0; i < 4; i++ {
			if i == seat {
				continue
			}
			if winnableWithTile(r.state.Players[i], synthetic) {
				robbers[i] = AvailableClaim{Win: true}
			}
		}
		if len(robbers) > 0 {
			r.pendingSelfKong = &pendingSelfKong{seat: seat, opt: opt}
			r.openClaimWindow(seat, synthetic, robbers, true)
			return
		}
	}
	r.commitSelfKong(seat, opt)
}

func (r *Room) commitSelfKong(seat int, opt mahjong.SelfKongOption) {
	ns, ok := mahjong.ApplySelfKong(r.state, seat, opt)
	if !ok {
		return
	}
	r.state = ns
	r.broadcastGameState()
	r.postDrawDecision(seat)
}

// ---- claim windows ------------------------------------------------------

func (r *Room) openDiscardClaimWindow() {
	discard := *r.state.LastDiscard
	discarderIdx := r.state.LastDiscarderIndex
	avail := computeAvailableClaims(r.state, discarderIdx, discard)
	r.openClaimWindow(discarderIdx, discard, avail, false)
}

func (r *Room) openClaimWindow(discarderIdx int, discard mahjong.Tile, avail map[int]AvailableClaim, robbing bool) {
	r.windowSeq++
	cw := &claimWindow{
		id:           r.windowSeq,
		discarderIdx: discarderIdx,
		discard:      discard,
		available:    avail,
		robbingKong:  robbing,
	}
	r.phase = phaseClaimWindow
	r.cw = cw

	for i := 0; i < 4; i++ {
		if i == discarderIdx {
			continue
		}
		a, has := avail[i]
		if !has {
			cw.responses[i] = claimResponse{responded: true, action: protocol.ActionPass}
			continue
		}
		if isBotDriven(r.state.Players[i]) {
			cw.responses[i] = claimResponse{responded: true, action: r.botClaimDecision(a, r.state.Players[i].SeatWind)}
		}
	}

	if cw.allResponded() {
		r.finishClaimWindow()
		return
	}
	for seat, a := range avail {
		if !cw.responses[seat].responded {
			r.sendClaimWindow(seat, a)
		}
	}
	cw.timer = scheduleAfter(r.events, r.cfg.ClaimWindowTimeout, func() GameEvent {
		return claimWindowTimeoutEvent{windowID: cw.id}
	})
}

func (r *Room) botClaimDecision(a AvailableClaim, seatWind mahjong.Wind) protocol.ActionType {
	if a.Win {
		return protocol.ActionWin
	}
	if a.KongTiles != nil {
		return protocol.ActionKong
	}
	if a.PongTiles != nil && r.bot.ShouldClaimPong(a.PongTiles[0].Def, seatWind) {
		return protocol.ActionPong
	}
	if len(a.ChiOptions) > 0 && r.bot.ShouldClaimChi() {
		return protocol.ActionChi
	}
	return protocol.ActionPass
}

func (r *Room) handleClaimWindowTimeout(e claimWindowTimeoutEvent) {
	if r.cw == nil || r.cw.id != e.windowID {
		return
	}
	for seat := range r.cw.available {
		if !r.cw.responses[seat].responded {
			r.cw.responses[seat] = claimResponse{responded: true, action: protocol.ActionPass}
		}
	}
	r.finishClaimWindow()
}

func (r *Room) finishClaimWindow() {
	cw := r.cw
	resolution := cw.resolve(r.state)
	r.cw = nil

	switch resolution.kind {
	case protocol.ActionWin:
		r.pendingSelfKong = nil
		r.resolveWin(resolution.seat, false, cw.discarderIdx)

	case protocol.ActionKong:
		ns, ok := mahjong.ApplyClaim(r.state, resolution.seat, mahjong.Kong, resolution.handTiles)
		if !ok {
			return
		}
		r.state = ns
		r.phase = phasePlaying
		r.broadcastGameState()
		r.postDrawDecision(resolution.seat)

	case protocol.ActionPong:
		ns, ok := mahjong.ApplyClaim(r.state, resolution.seat, mahjong.Pong, resolution.handTiles)
		if !ok {
			return
		}
		r.state = ns
		r.phase = phasePlaying
		r.broadcastGameState()
		r.beginDiscardPhase(resolution.seat)

	case protocol.ActionChi:
		ns, ok := mahjong.ApplyClaim(r.state, resolution.seat, mahjong.Chi, resolution.chiOption.HandTiles)
		if !ok {
			return
		}
		r.state = ns
		r.phase = phasePlaying
		r.broadcastGameState()
		r.beginDiscardPhase(resolution.seat)

	default: // every responder passed
		if cw.robbingKong {
			if r.pendingSelfKong != nil {
				r.commitSelfKong(r.pendingSelfKong.seat, r.pendingSelfKong.opt)
				r.pendingSelfKong = nil
			}
			return
		}
		r.state = mahjong.AdvanceTurn(r.state, cw.discarderIdx)
		r.phase = phasePlaying
		r.broadcastGameState()
		r.beginTurn()
	}
}

// beginDiscardPhase is entered by a pong/chi claimer, who holds exactly
// a discard-ready hand already (no draw precedes their discard).
func (r *Room) beginDiscardPhase(seat int) {
	player := r.state.Players[seat]
	if isBotDriven(player) {
		discard := r.bot.ChooseDiscard(player.Hand)
		r.scheduleBotAction(func() { r.doDiscard(seat, discard.ID) })
		return
	}
	r.sendYourTurn(seat, protocol.PhaseHumanNeedsDiscard, map[string]bool{"canWin": false, "canSelfKong": false})
}

// ---- action dispatch ----------------------------------------------------

func (r *Room) handleAction(e ActionEvent) {
	switch {
	case r.phase == phasePlaying && e.SeatIndex == r.state.CurrentPlayer:
		r.handleTurnAction(e)
	case r.phase == phaseClaimWindow && r.cw != nil:
		r.handleClaimAction(e)
	default:
		// out-of-turn action; ignored.
	}
}

func (r *Room) handleTurnAction(e ActionEvent) {
	player := r.state.Players[e.SeatIndex]
	if isBotDriven(player) {
		return // bot turns are server-scheduled, not client-driven
	}
	awaitingDraw := len(player.Hand) == 13-3*player.MeldCount()

	switch e.Action {
	case protocol.ActionDraw:
		if awaitingDraw {
			r.doDraw(e.SeatIndex)
		}
	case protocol.ActionDiscard:
		if !awaitingDraw {
			r.doDiscard(e.SeatIndex, e.TileID)
		}
	case protocol.ActionWin:
		if awaitingDraw {
			return
		}
		patterns, _ := mahjong.CalculateTai(player, true, r.state.RoundWind)
		if mahjong.CheckWin(player.Hand, player.Melds) && len(patterns) > 0 {
			r.resolveWin(e.SeatIndex, true, mahjong.NoPlayer)
		} else {
			r.sendError(e.SeatIndex, "not enough tai to win")
		}
	case protocol.ActionKong:
		if awaitingDraw {
			return
		}
		if opt, ok := mahjong.CanSelfKong(player); ok {
			r.applySelfKongAndContinue(e.SeatIndex, opt)
		} else {
			r.sendError(e.SeatIndex, "no legal self-kong")
		}
	}
}

func (r *Room) handleClaimAction(e ActionEvent) {
	a, has := r.cw.available[e.SeatIndex]
	if !has || r.cw.responses[e.SeatIndex].responded {
		return
	}
	valid := false
	switch e.Action {
	case protocol.ActionWin:
		valid = a.Win
	case protocol.ActionKong:
		valid = a.KongTiles != nil
	case protocol.ActionPong:
		valid = a.PongTiles != nil
	case protocol.ActionChi:
		valid = len(a.ChiOptions) > 0
	case protocol.ActionPass:
		valid = true
	}
	if !valid {
		if e.Action == protocol.ActionWin {
			r.sendError(e.SeatIndex, "not enough tai to win")
		}
		return
	}
	chiIdx := 0
	if e.ChiIndex != nil {
		chiIdx = *e.ChiIndex
	}
	r.cw.responses[e.SeatIndex] = claimResponse{responded: true, action: e.Action, chiIndex: chiIdx}
	if r.cw.allResponded() {
		r.cw.timer.Stop()
		r.finishClaimWindow()
	}
}

// ---- round end / scoring ------------------------------------------------

func (r *Room) resolveWin(winnerSeat int, selfDraw bool, shooterSeat int) {
	winner := r.state.Players[winnerSeat]
	patterns, tai := mahjong.CalculateTai(winner, selfDraw, r.state.RoundWind)
	base := mahjong.BasePoints(tai)
	payments := mahjong.CalculatePayments(winnerSeat, selfDraw, shooterSeat, base)
	for _, pay := range payments.Payments {
		r.state.Players[pay.PlayerIndex].Score += pay.Amount
	}
	r.state.Phase = mahjong.Finished
	r.phase = phaseEndOfRound
	r.lastRoundHadWinner = true
	r.lastWinnerSeat = winnerSeat

	idx := winnerSeat
	r.broadcastRoundOver(&idx, taiResultView(patterns, tai), paymentResultView(payments), "")
}

func (r *Room) endRoundDraw() {
	r.state.Phase = mahjong.Finished
	r.phase = phaseEndOfRound
	r.lastRoundHadWinner = false
	r.broadcastRoundOver(nil, nil, nil, "wall exhausted — no winner")
}

func (r *Room) handleNextRound(e NextRoundEvent) {
	if r.phase != phaseEndOfRound {
		return
	}
	dealerSeat := r.state.Dealer()
	dealerRetained := r.lastRoundHadWinner && r.lastWinnerSeat == dealerSeat

	roundWind := r.state.RoundWind
	roundNumber := r.state.RoundNumber
	seatWinds := [4]mahjong.Wind{}
	for i, p := range r.state.Players {
		seatWinds[i] = p.SeatWind
	}
	if !dealerRetained {
		for i := range seatWinds {
			seatWinds[i] = seatWinds[i].Next()
		}
		roundNumber++
		if roundNumber > 4 {
			roundWind = roundWind.Next()
			roundNumber = 1
		}
	}

	wall := mahjong.NewWall(r.rng)
	gs := mahjong.NewGameState(wall, roundWind, roundNumber)
	for i, p := range r.state.Players {
		gs.Players[i].Name = p.Name
		gs.Players[i].Avatar = p.Avatar
		gs.Players[i].Score = p.Score
		gs.Players[i].Status = p.Status
		gs.Players[i].SeatWind = seatWinds[i]
	}

	ns, ok := mahjong.DealInitial(gs)
	if !ok {
		r.log.Error("deal exhausted the wall at round start; holding at end-of-round")
		return
	}
	r.state = ns
	r.phase = phasePlaying
	r.broadcastGameState()
	r.beginTurn()
}

// ---- bot pacing ----------------------------------------------------------

// scheduleBotAction replaces any previously scheduled bot action for
// this room — only one can ever be pending, since only one seat is
// ever awaiting a bot-driven decision at a time.
func (r *Room) scheduleBotAction(action func()) {
	r.botTimer.Stop()
	r.botScheduleSeq++
	seq := r.botScheduleSeq
	r.pendingBotFn = action
	r.botTimer = scheduleAfter(r.events, r.cfg.BotActionDelay, func() GameEvent {
		return botActionTimeoutEvent{scheduleID: seq}
	})
}

func (r *Room) handleBotActionTimeout(e botActionTimeoutEvent) {
	if e.scheduleID != r.botScheduleSeq {
		return
	}
	fn := r.pendingBotFn
	r.pendingBotFn = nil
	if fn != nil {
		fn()
	}
}

// ---- outbound messages ----------------------------------------------------

func encode(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		logging.Error("encoding outbound frame: %v", err)
		return nil
	}
	return b
}

func (r *Room) broadcastRoomState() {
	var players []view.ClientRoomPlayer
	for i := 0; i < 4; i++ {
		s := r.seats[i]
		if !s.occupied() {
			continue
		}
		players = append(players, view.ClientRoomPlayer{
			SeatIndex: i,
			Name:      s.name,
			Avatar:    s.avatar,
			Ready:     s.ready,
			IsHost:    i == r.hostSeat,
		})
	}
	room := view.ClientRoom{RoomID: r.ID, Players: players}
	frame := encode(protocol.NewRoomState(room))
	for i := 0; i < 4; i++ {
		if conn := r.seats[i].conn; conn != nil {
			conn.Send(frame)
		}
	}
}

func (r *Room) broadcastGameStart() {
	for i := 0; i < 4; i++ {
		if conn := r.seats[i].conn; conn != nil {
			conn.Send(encode(protocol.NewGameStart(view.Project(r.state, i))))
		}
	}
}

func (r *Room) broadcastGameState() {
	for i := 0; i < 4; i++ {
		if conn := r.seats[i].conn; conn != nil {
			conn.Send(encode(protocol.NewGameState(view.Project(r.state, i))))
		}
	}
}

func (r *Room) sendGameState(seat int) {
	if conn := r.seats[seat].conn; conn != nil {
		conn.Send(encode(protocol.NewGameState(view.Project(r.state, seat))))
	}
}

func (r *Room) sendYourTurn(seat int, phase string, availableActions interface{}) {
	if conn := r.seats[seat].conn; conn != nil {
		conn.Send(encode(protocol.NewYourTurn(phase, availableActions)))
	}
}

type claimOptionsView struct {
	Win        bool             `json:"win"`
	KongTiles  []view.TileView  `json:"kongTiles,omitempty"`
	PongTiles  []view.TileView  `json:"pongTiles,omitempty"`
	ChiOptions [][]view.TileView `json:"chiOptions,omitempty"`
}

func availableClaimView(a AvailableClaim) claimOptionsView {
	v := claimOptionsView{Win: a.Win}
	if a.KongTiles != nil {
		v.KongTiles = tilesToView(a.KongTiles)
	}
	if a.PongTiles != nil {
		v.PongTiles = tilesToView(a.PongTiles)
	}
	for _, opt := range a.ChiOptions {
		v.ChiOptions = append(v.ChiOptions, tilesToView(opt.HandTiles))
	}
	return v
}

func tilesToView(tiles []mahjong.Tile) []view.TileView {
	out := make([]view.TileView, len(tiles))
	for i, t := range tiles {
		out[i] = view.NewTileView(t)
	}
	return out
}

func (r *Room) sendClaimWindow(seat int, a AvailableClaim) {
	if conn := r.seats[seat].conn; conn != nil {
		millis := r.cfg.ClaimWindowTimeout.Milliseconds()
		conn.Send(encode(protocol.NewClaimWindow(millis, availableClaimView(a))))
	}
}

func (r *Room) sendError(seat int, msg string) {
	if conn := r.seats[seat].conn; conn != nil {
		conn.Send(encode(protocol.NewError(msg)))
	}
}

func (r *Room) broadcastPlayerDisconnected(seat int) {
	frame := encode(protocol.NewPlayerDisconnected(seat))
	for i := 0; i < 4; i++ {
		if conn := r.seats[i].conn; conn != nil {
			conn.Send(frame)
		}
	}
}

func (r *Room) broadcastPlayerReconnected(seat int) {
	frame := encode(protocol.NewPlayerReconnected(seat))
	for i := 0; i < 4; i++ {
		if conn := r.seats[i].conn; conn != nil {
			conn.Send(frame)
		}
	}
}

type taiResultPayload struct {
	Patterns []patternView `json:"patterns"`
	Tai      int           `json:"tai"`
}

type patternView struct {
	Name string `json:"name"`
	Tai  int    `json:"tai"`
}

func taiResultView(patterns []mahjong.ScorePattern, tai int) *taiResultPayload {
	out := &taiResultPayload{Tai: tai}
	for _, p := range patterns {
		out.Patterns = append(out.Patterns, patternView{Name: p.Pattern.String(), Tai: p.Tai})
	}
	return out
}

type paymentResultPayload struct {
	WinnerIndex int                    `json:"winnerIndex"`
	WinnerTotal int                    `json:"winnerTotal"`
	Payments    []mahjong.PlayerPayment `json:"payments"`
}

func paymentResultView(p mahjong.PaymentResult) *paymentResultPayload {
	return &paymentResultPayload{WinnerIndex: p.WinnerIndex, WinnerTotal: p.WinnerTotal, Payments: p.Payments}
}

func (r *Room) broadcastRoundOver(winnerIndex *int, taiResult *taiResultPayload, paymentResult *paymentResultPayload, message string) {
	var taiIface, payIface interface{}
	if taiResult != nil {
		taiIface = taiResult
	}
	if paymentResult != nil {
		payIface = paymentResult
	}
	frame := encode(protocol.NewRoundOver(winnerIndex, taiIface, payIface, message))
	for i := 0; i < 4; i++ {
		if conn := r.seats[i].conn; conn != nil {
			conn.Send(frame)
		}
	}
}
