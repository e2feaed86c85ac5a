/*
Package markov implements a fixed-order Markov-chain text generator: it
learns token-transition statistics from training text and samples new
text from those statistics.

A Model is trained incrementally from raw text and queried with weighted,
temperature-scaled sampling. Training and generation are synchronous,
single-threaded operations on a caller-owned Model; callers that share a
Model across goroutines must serialize access themselves.
*/
package markov
