package textkit

import "strings"

// StopWords is an immutable set of lowercase words ignored in frequency counts.
type StopWords struct {
	set map[string]struct{}
}

// Contains reports whether the lowercase form of word is a stop word.
func (s StopWords) Contains(word string) bool {
	_, ok := s.set[strings.ToLower(word)]
	return ok
}

// Len returns the number of stop words.
func (s StopWords) Len() int {
	return len(s.set)
}

func newStopWords(lists ...string) StopWords {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range strings.Fields(list) {
			set[w] = struct{}{}
		}
	}
	return StopWords{set: set}
}

// BuiltinStopWords returns the small fixed English list.
func BuiltinStopWords() StopWords {
	return newStopWords(builtinList)
}

// ExtendedStopWords returns the builtin list plus a general English corpus.
func ExtendedStopWords() StopWords {
	return newStopWords(builtinList, englishCorpus)
}

const builtinList = `
the a an and or but in on at to for of with by
is are was were be been have has had do does did
will would should could can may might must this that
these those he she it they we you i me him her
us them my your his its our their up down
out off over under again further then once
`

const englishCorpus = `
about above across after afterwards against all almost alone along already also
although always am among amongst amount another any anyhow anyone anything anyway
anywhere aren't around as back became because become becomes becoming before
beforehand behind being below beside besides between beyond both can't cannot
couldn't didn't doesn't doing don't done during each either else elsewhere enough
entirely especially etc even ever every everyone everything everywhere few former
formerly from hadn't hasn't haven't having he'd he'll he's hence here hereafter
hereby herein here's hereupon hers herself himself how however i'd i'll i'm i've
if indeed into isn't it's itself just keep last latter latterly least less let
let's like likely made make many maybe meanwhile mine more moreover most mostly
much mustn't myself neither never nevertheless next no nobody none noone nor not
nothing now nowhere often only onto other others otherwise ours ourselves own part
per perhaps please put rather re same see seem seemed seeming seems several she'd
she'll she's shouldn't since so some somehow someone something sometime sometimes
somewhere still such take than that's theirs themselves thence there thereafter
thereby therefore therein there's thereupon they'd they'll they're they've through
throughout thru thus together too toward towards until upon use very via wasn't
we'd we'll we're we've well weren't what whatever what's when whence whenever where
whereafter whereas whereby wherein where's whereupon wherever whether which while
whither who who'd whoever who'll who's whose why within without won't wouldn't yet
you'd you'll you're you've yours yourself yourselves ain't it'll shan't that'll
when's ain aren couldn didn doesn hadn hasn haven isn mightn mustn needn shan
shouldn wasn weren won wouldn ll ve theirs yours just don should've own same
`
