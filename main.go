package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"goosebot/bots"
	"goosebot/config"
	"goosebot/harness"
)

var (
	screenWidth  int
	screenHeight int
	squareSize   int
)

var botOrder = []string{"goose", "random"}

type Game struct {
	chessGame    *chess.Game
	pieces       map[chess.Piece]*ebiten.Image
	selected     chess.Square
	dragging     *chess.Piece
	dragX, dragY int
	playerColor  chess.Color
	gameStarted  bool
	boardOffsetX int
	boardOffsetY int
	opts         bots.GooseOptions
	botIndex     int
	currentBot   bots.ChessBot
	turn         *harness.BotTurn
}

func NewGame(opts bots.GooseOptions, botName string) *Game {
	screenWidth, screenHeight = ebiten.ScreenSizeInFullscreen()

	// leave room for the status line on top
	boardHeight := screenHeight - 80
	squareSize = boardHeight / 8
	if screenWidth/8 < squareSize {
		squareSize = screenWidth / 8
	}

	boardWidth := squareSize * 8
	g := &Game{
		pieces:       make(map[chess.Piece]*ebiten.Image),
		boardOffsetX: (screenWidth - boardWidth) / 2,
		boardOffsetY: (screenHeight - boardHeight) / 2,
		opts:         opts,
		turn:         harness.NewBotTurn(300 * time.Millisecond),
	}
	for i, name := range botOrder {
		if name == botName {
			g.botIndex = i
		}
	}
	g.currentBot = g.newBot()
	g.loadPieceImages()
	return g
}

// newBot builds a fresh bot so each game starts with a clean repetition table.
func (g *Game) newBot() bots.ChessBot {
	return bots.NewBot(botOrder[g.botIndex], g.opts)()
}

func (g *Game) loadPieceImages() {
	size := squareSize * 2 / 3
	for _, piece := range []chess.Piece{
		chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn,
		chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn,
	} {
		img := ebiten.NewImage(size, size)
		if piece.Color() == chess.White {
			img.Fill(color.RGBA{250, 250, 250, 255})
		} else {
			img.Fill(color.RGBA{30, 30, 30, 255})
		}
		label := ebiten.NewImage(12, 16)
		label.Fill(color.RGBA{200, 30, 30, 255})
		ebitenutil.DebugPrintAt(label, string(bots.FENLetter(piece)), 3, 0)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(size/2-6), float64(size/2-8))
		img.DrawImage(label, op)
		g.pieces[piece] = img
	}
}

func (g *Game) squareAt(x, y int) (chess.Square, bool) {
	x -= g.boardOffsetX
	y -= g.boardOffsetY
	if x < 0 || x >= squareSize*8 || y < 0 || y >= squareSize*8 {
		return chess.NoSquare, false
	}
	file := x / squareSize
	rank := 7 - y/squareSize
	return chess.NewSquare(chess.File(file), chess.Rank(rank)), true
}

func (g *Game) Update() error {
	if !g.gameStarted {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			btnWidth := 200
			btnHeight := 60
			btnY := screenHeight/2 + 100

			if y > btnY && y < btnY+btnHeight {
				if x > screenWidth/2-btnWidth-20 && x < screenWidth/2-20 {
					g.playerColor = chess.White
					g.startGame()
				} else if x > screenWidth/2+20 && x < screenWidth/2+20+btnWidth {
					g.playerColor = chess.Black
					g.startGame()
				}
			}
		}
		return nil
	}

	if done, err := g.turn.Poll(g.chessGame); done && err != nil {
		log.Error().Err(err).Str("bot", g.currentBot.Name()).Msg("bot move error")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) && !g.turn.Pending() {
		g.botIndex = (g.botIndex + 1) % len(botOrder)
		g.currentBot = g.newBot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !g.turn.Pending() {
		g.startGame()
		return nil
	}

	if g.chessGame.Position().Turn() == g.playerColor && !g.turn.Pending() {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			if sq, ok := g.squareAt(x, y); ok {
				piece := g.chessGame.Position().Board().Piece(sq)
				if piece != chess.NoPiece && piece.Color() == g.playerColor {
					g.selected = sq
					g.dragging = &piece
				}
			}
		}
		if g.dragging != nil {
			g.dragX, g.dragY = ebiten.CursorPosition()
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging != nil {
			x, y := ebiten.CursorPosition()
			if target, ok := g.squareAt(x, y); ok {
				if move := harness.FindMove(g.chessGame, g.selected, target, chess.Queen); move != nil {
					if err := g.chessGame.Move(move); err != nil {
						log.Error().Err(err).Msg("player move rejected")
					}
				}
			}
			g.selected = 0
			g.dragging = nil
		}
	}

	if !g.turn.Pending() && g.chessGame.Outcome() == chess.NoOutcome && g.chessGame.Position().Turn() != g.playerColor {
		g.startBotMove()
	}
	return nil
}

func (g *Game) startGame() {
	g.chessGame = chess.NewGame()
	g.currentBot = g.newBot()
	g.gameStarted = true
}

func (g *Game) startBotMove() {
	if err := g.turn.Start(g.currentBot, g.chessGame); err != nil {
		log.Error().Err(err).Msg("could not start bot move")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.gameStarted {
		ebitenutil.DebugPrintAt(screen, "Goose chess", screenWidth/2-40, screenHeight/2-50)
		ebitenutil.DebugPrintAt(screen, "Pick your colour:", screenWidth/2-60, screenHeight/2)

		whiteBtn := ebiten.NewImage(200, 60)
		whiteBtn.Fill(color.RGBA{200, 200, 200, 255})
		ebitenutil.DebugPrintAt(whiteBtn, "Play white", 60, 20)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(screenWidth/2-200-20), float64(screenHeight/2+100))
		screen.DrawImage(whiteBtn, op)

		blackBtn := ebiten.NewImage(200, 60)
		blackBtn.Fill(color.RGBA{50, 50, 50, 255})
		ebitenutil.DebugPrintAt(blackBtn, "Play black", 60, 20)
		op = &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(screenWidth/2+20), float64(screenHeight/2+100))
		screen.DrawImage(blackBtn, op)
		return
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			clr := color.RGBA{240, 217, 181, 255}
			if (x+y)%2 == 1 {
				clr = color.RGBA{181, 136, 99, 255}
			}
			rect := ebiten.NewImage(squareSize, squareSize)
			rect.Fill(clr)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x*squareSize+g.boardOffsetX), float64(y*squareSize+g.boardOffsetY))
			screen.DrawImage(rect, op)
		}
	}

	inset := float64(squareSize-squareSize*2/3) / 2
	board := g.chessGame.Position().Board()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sq := chess.NewSquare(chess.File(x), chess.Rank(7-y))
			piece := board.Piece(sq)
			if piece == chess.NoPiece || (g.dragging != nil && sq == g.selected) {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x*squareSize+g.boardOffsetX)+inset, float64(y*squareSize+g.boardOffsetY)+inset)
			screen.DrawImage(g.pieces[piece], op)
		}
	}

	if g.dragging != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(g.dragX)-float64(squareSize)/3, float64(g.dragY)-float64(squareSize)/3)
		screen.DrawImage(g.pieces[*g.dragging], op)
	}

	status := "Your move"
	if g.turn.Pending() {
		status = "Bot is thinking..."
	} else if g.chessGame.Position().Turn() != g.playerColor {
		status = "Bot to move"
	}
	ebitenutil.DebugPrintAt(screen, status, 20, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Bot: %s  (B to switch, N for a new game)", g.currentBot.Name()), 20, screenHeight-40)

	if outcome := g.chessGame.Outcome(); outcome != chess.NoOutcome {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Result: %s (%s)", outcome, g.chessGame.Method()), screenWidth/2-60, 20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	log.Logger = harness.NewLogger(cfg.GetString(config.ConfigLogLevel))

	game := NewGame(cfg.GooseOptions(), cfg.GetString(config.ConfigBot))
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Goose chess")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
