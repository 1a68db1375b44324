// Package questions holds the quiz content that ships with the binary.
package questions

import "drb-quiz-service/internal/domain"

// BuiltinID identifies the bundled bank.
const BuiltinID = "grok-drb"

// Builtin returns the ten GROK x $DRB questions in play order.
func Builtin() domain.Bank {
	return domain.Bank{
		ID: BuiltinID,
		Questions: []domain.Question{
			{
				ID:                 1,
				Prompt:             "Who created Grok AI?",
				Options:            []string{"OpenAI", "xAI (Elon Musk)", "Google DeepMind", "Anthropic"},
				CorrectOptionIndex: 1,
				Category:           domain.CategoryGrok,
			},
			{
				ID:                 2,
				Prompt:             "What is Grok named after?",
				Options:            []string{"A Norse god", "A programming term", "Stranger in a Strange Land (Heinlein)", "A crypto meme"},
				CorrectOptionIndex: 2,
				Category:           domain.CategoryGrok,
			},
			{
				ID:                 3,
				Prompt:             "What makes Grok different from other AI chatbots?",
				Options:            []string{"It can code better", "It has real-time X (Twitter) access & wit", "It's free for everyone", "It runs on quantum computers"},
				CorrectOptionIndex: 1,
				Category:           domain.CategoryGrok,
			},
			{
				ID:                 4,
				Prompt:             "What does 'WAGMI' mean in crypto culture?",
				Options:            []string{"We All Gonna Make It", "Wallet And Gateway Mining Interface", "Web3 Automated Global Market Index", "When All Gains Meet Infinity"},
				CorrectOptionIndex: 0,
				Category:           domain.CategoryCrypto,
			},
			{
				ID:                 5,
				Prompt:             "What is 'diamond hands' in crypto slang?",
				Options:            []string{"Expensive jewelry NFTs", "Holding assets despite volatility", "A mining technique", "Premium wallet security"},
				CorrectOptionIndex: 1,
				Category:           domain.CategoryCrypto,
			},
			{
				ID:                 6,
				Prompt:             "What blockchain is $DRB typically associated with?",
				Options:            []string{"Bitcoin", "Ethereum/Solana meme coins", "Cardano", "Polkadot"},
				CorrectOptionIndex: 1,
				Category:           domain.CategoryDRB,
			},
			{
				ID:                 7,
				Prompt:             "What does 'HODL' originally come from?",
				Options:            []string{"Hold On for Dear Life", "A typo of 'hold' in a Bitcoin forum", "High Output Digital Ledger", "A trading algorithm name"},
				CorrectOptionIndex: 1,
				Category:           domain.CategoryCrypto,
			},
			{
				ID:                 8,
				Prompt:             "Grok has a 'fun mode' - what does it do?",
				Options:            []string{"Plays games", "Adds humor and sarcasm to responses", "Generates memes", "Speaks in emojis only"},
				CorrectOptionIndex: 1,
				Category:           domain.CategoryGrok,
			},
			{
				ID:                 9,
				Prompt:             "What is 'rug pull' in crypto?",
				Options:            []string{"A cleaning NFT", "When devs abandon project & take funds", "A bullish indicator", "Staking rewards"},
				CorrectOptionIndex: 1,
				Category:           domain.CategoryCrypto,
			},
			{
				ID:                 10,
				Prompt:             "What's the meaning of 'gm' in crypto Twitter?",
				Options:            []string{"General Manager", "Good Morning (community greeting)", "Gains Multiplier", "Gas Money"},
				CorrectOptionIndex: 1,
				Category:           domain.CategoryMeme,
			},
		},
	}
}

// MustBuiltin returns the bundled bank, validated.
func MustBuiltin() *domain.QuestionBank {
	bank, err := domain.NewQuestionBank(Builtin())
	if err != nil {
		panic(err)
	}
	return bank
}
