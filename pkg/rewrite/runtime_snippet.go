package rewrite

// This file holds the literal runtime template strings spec.md §4.5
// specifies byte-for-byte as part of the contract. Nothing here is
// synthesized at runtime; every wrap a non-async function or the script
// IIFE receives is one of these constants (or the arrow-expression-body
// variant built from them).

// syntheticPromiseHelpers declares the well-known tag, the two helper
// functions that set and test it, the function-local state variables, and
// opens the inner async IIFE whose try block the wrapped body becomes.
const syntheticPromiseHelpers = `
const _syntheticPromise = __SymbolFor('@@mongosh.syntheticPromise');

function _markSyntheticPromise(p) {
    return Object.defineProperty(p, _syntheticPromise, {
        value: true,
    });
}

function _isp(p) {
    return p && p[_syntheticPromise];
}

let _functionState = 'sync', _synchronousReturnValue, _ex;

const _asynchronousReturnValue = (async () => {
try {
`

// syntheticPromiseHelpersTopLevel is the helper block the script IIFE
// receives. It is the same text as syntheticPromiseHelpers: both read the tag
// through the __SymbolFor alias scriptPrologue declares rather than through
// Symbol.for, so user code that shadows the global Symbol binding cannot
// break the rewrite (spec.md §4.4 step 5).
const syntheticPromiseHelpersTopLevel = syntheticPromiseHelpers

// functionWrapCloser is emitted at body-end for every non-async function
// wrap: it closes the try block, forwards synchronous exceptions, closes
// the inner async IIFE, and returns/throws/marks-and-returns depending on
// which state the inner IIFE left behind.
const functionWrapCloser = `
} catch (err) {
    if (_functionState === 'sync') {
        _synchronousReturnValue = err;
        _functionState = 'threw';
    } else {
        throw err;
    }
} finally {
    if (_functionState !== 'threw') {
        _functionState = 'returned';
    }
}

})();

if (_functionState === 'returned') {
    return _synchronousReturnValue;
} else if (_functionState === 'threw') {
    throw _synchronousReturnValue;
}

_functionState = 'async';
return _markSyntheticPromise(_asynchronousReturnValue);
`

// exprBodyReturnOpen/exprBodyReturnClose fund the implicit return of an
// arrow function whose body is a bare expression (no braces) through
// _synchronousReturnValue, the way a `return` statement's argument would be
// (spec.md §4.3 (F2), §4.5).
const (
	exprBodyReturnOpen  = "return (_synchronousReturnValue = ("
	exprBodyReturnClose = "), _functionState === 'async' ? _synchronousReturnValue : null);"
)

// scriptPrologue opens the IIFE the whole rewritten script is wrapped in
// (spec.md §4.4 step 5). __SymbolFor aliases Symbol.for so user code
// shadowing the global Symbol binding cannot break the synthetic-promise tag
// check.
const scriptPrologue = ";(() => { const __SymbolFor = Symbol.for;"

// scriptEpilogue closes the script IIFE and immediately invokes it.
const scriptEpilogue = "})()"

// exprWrapOpen/exprWrapClose are the implicit-await envelope of rule (X):
// evaluate once into _ex, then await it only if it is tagged as a synthetic
// promise.
const (
	exprWrapOpen  = "(_ex = "
	exprWrapClose = ", _isp(_ex) ? await _ex : _ex)"
)

// returnWrapOpen/returnWrapClose implement rule (R): a `return` argument
// inside a non-async function also funnels through _synchronousReturnValue
// so the outer function can tell a synchronous return from an asynchronous
// one once the inner IIFE has suspended.
const (
	returnWrapOpen  = "(_synchronousReturnValue = ("
	returnWrapClose = "), _functionState === 'async' ? _synchronousReturnValue : null);"
)

// typeofGuardOpen/typeofGuardClose preserve `typeof x` on a possibly
// undeclared identifier: testing typeof first, against the identifier's raw
// source text, before any wrap could evaluate (and therefore throw a
// ReferenceError for) the identifier.
const typeofGuardOpen = "(typeof "

func typeofGuardMiddle(rawIdent string) string {
	return rawIdent + " === 'undefined' ? 'undefined' : "
}

const typeofGuardClose = ")"
