package importer

// importMessages provides the log wording for a single-block import so the
// mined and peer-broadcast paths stay distinguishable in the logs.
type importMessages struct {
	preImport        string
	importedToTop    string
	enqueued         string
	duplicate        string
	unknownParent    string
	reorganised      string
	failed           string
	missingStateNode string
}

var minedBlockMessages = importMessages{
	preImport:        "importing mined block",
	importedToTop:    "mined block imported to top of chain",
	enqueued:         "mined block enqueued, offering header as ommer candidate",
	duplicate:        "mined block already in chain",
	unknownParent:    "mined block has unknown parent",
	reorganised:      "mined block switched to new branch",
	failed:           "failed to import mined block",
	missingStateNode: "missing state node while importing mined block",
}

var peerBlockMessages = importMessages{
	preImport:        "importing new block from peer",
	importedToTop:    "new block imported to top of chain",
	enqueued:         "new block enqueued, offering header as ommer candidate",
	duplicate:        "new block already in chain",
	unknownParent:    "new block has unknown parent, ignoring until sync delivers it",
	reorganised:      "new block switched to new branch",
	failed:           "failed to import new block",
	missingStateNode: "missing state node while importing new block",
}
