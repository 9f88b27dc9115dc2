// Package game implements the Perudo (Liar's Dice) rules engine.
//
// The main type is Game, which owns the seating order, dice counts and turn
// position across rounds. Each call to Advance deals fresh hands, asks agents
// for actions until someone calls or claims exact, and applies the result.
//
// # Basic Usage
//
//	g, err := game.NewGame(game.Config{Players: 5, StartingDice: 5}, agent)
//	if err != nil {
//	    return err
//	}
//	for !g.Finished() {
//	    res, err := g.Advance(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println("round", res.Round, "losers", res.Losers)
//	}
//
// # Deterministic Testing
//
// Pass a seeded *rand.Rand in Config.Rand to replay a game exactly:
//
//	g, _ := game.NewGame(game.Config{
//	    Players:      3,
//	    StartingDice: 5,
//	    Rand:         randutil.New(42),
//	}, agent)
//
// # Rules
//
//   - Aces are wild and count toward any other face, except in palifico
//     rounds, which follow any round where a player dropped to one die.
//     Palifico also locks the face of the opening bet.
//   - A bet must raise the standing bet (see CheckBet). An illegal bet costs
//     the bettor a die without counting.
//   - A call costs the challenger a die if the bet holds, otherwise the bettor.
//   - A correct exact claim costs every other player a die; a wrong one costs
//     the claimant.
//   - Nobody loses more than one die per round. The player who ended the round
//     opens the next one, or the next seat if they are out.
package game
