package js

import "github.com/elolang/elo/internal/codegen"

// Durations travel as plain objects tagged with __dur so the dispatch
// helpers can tell them from numbers and dates at runtime. Weeks fold
// into days at parse time; months and years stay symbolic and resolve
// against the calendar when added to a date.
var runtimeHelpers = codegen.HelperTable{
	"kIsDate": {
		Body: `function kIsDate(v) { return v instanceof Date; }`,
	},
	"kIsDur": {
		Body: `function kIsDur(v) { return v !== null && typeof v === 'object' && v.__dur === true; }`,
	},
	"kDate": {
		Body: `function kDate(s) { return new Date(s); }`,
	},
	"kDuration": {
		Body: `function kDuration(s) {
  var m = /^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$/.exec(s);
  if (!m) { throw new Error('invalid duration: ' + s); }
  var n = function (v) { return v ? parseInt(v, 10) : 0; };
  return { __dur: true, y: n(m[1]), mo: n(m[2]), d: n(m[3]) * 7 + n(m[4]), h: n(m[5]), mi: n(m[6]), s: n(m[7]) };
}`,
	},
	"kDateAdd": {
		Body: `function kDateAdd(d, dur, sign) {
  var r = new Date(d.getTime());
  r.setFullYear(r.getFullYear() + sign * dur.y);
  r.setMonth(r.getMonth() + sign * dur.mo);
  r.setDate(r.getDate() + sign * dur.d);
  r.setHours(r.getHours() + sign * dur.h, r.getMinutes() + sign * dur.mi, r.getSeconds() + sign * dur.s);
  return r;
}`,
	},
	"kDurScale": {
		Body: `function kDurScale(dur, k) {
  return { __dur: true, y: dur.y * k, mo: dur.mo * k, d: dur.d * k, h: dur.h * k, mi: dur.mi * k, s: dur.s * k };
}`,
	},
	"kAdd": {
		Deps: []string{"kIsDate", "kIsDur", "kDateAdd"},
		Body: `function kAdd(a, b) {
  if (kIsDate(a) && kIsDur(b)) { return kDateAdd(a, b, 1); }
  if (kIsDur(a) && kIsDate(b)) { return kDateAdd(b, a, 1); }
  if (kIsDur(a) && kIsDur(b)) {
    return { __dur: true, y: a.y + b.y, mo: a.mo + b.mo, d: a.d + b.d, h: a.h + b.h, mi: a.mi + b.mi, s: a.s + b.s };
  }
  return a + b;
}`,
	},
	"kSub": {
		Deps: []string{"kIsDate", "kIsDur", "kDateAdd"},
		Body: `function kSub(a, b) {
  if (kIsDate(a) && kIsDur(b)) { return kDateAdd(a, b, -1); }
  if (kIsDate(a) && kIsDate(b)) {
    return { __dur: true, y: 0, mo: 0, d: 0, h: 0, mi: 0, s: Math.round((a.getTime() - b.getTime()) / 1000) };
  }
  if (kIsDur(a) && kIsDur(b)) {
    return { __dur: true, y: a.y - b.y, mo: a.mo - b.mo, d: a.d - b.d, h: a.h - b.h, mi: a.mi - b.mi, s: a.s - b.s };
  }
  return a - b;
}`,
	},
	"kMul": {
		Deps: []string{"kIsDur", "kDurScale"},
		Body: `function kMul(a, b) {
  if (kIsDur(a)) { return kDurScale(a, b); }
  if (kIsDur(b)) { return kDurScale(b, a); }
  return a * b;
}`,
	},
	"kDiv": {
		Deps: []string{"kIsDur", "kDurScale"},
		Body: `function kDiv(a, b) {
  if (kIsDur(a)) { return kDurScale(a, 1 / b); }
  return a / b;
}`,
	},
	"kMod": {
		Body: `function kMod(a, b) { return a % b; }`,
	},
	"kNeg": {
		Deps: []string{"kIsDur", "kDurScale"},
		Body: `function kNeg(a) {
  if (kIsDur(a)) { return kDurScale(a, -1); }
  return -a;
}`,
	},
	"kEq": {
		Deps: []string{"kIsDate"},
		Body: `function kEq(a, b) {
  if (kIsDate(a) && kIsDate(b)) { return a.getTime() === b.getTime(); }
  return a === b;
}`,
	},
	"kNeq": {
		Deps: []string{"kEq"},
		Body: `function kNeq(a, b) { return !kEq(a, b); }`,
	},
	"kCmp": {
		Deps: []string{"kIsDate"},
		Body: `function kCmp(a, b) {
  if (kIsDate(a) && kIsDate(b)) { return a.getTime() - b.getTime(); }
  if (a < b) { return -1; }
  if (a > b) { return 1; }
  return 0;
}`,
	},
	"kLt": {
		Deps: []string{"kCmp"},
		Body: `function kLt(a, b) { return kCmp(a, b) < 0; }`,
	},
	"kLte": {
		Deps: []string{"kCmp"},
		Body: `function kLte(a, b) { return kCmp(a, b) <= 0; }`,
	},
	"kGt": {
		Deps: []string{"kCmp"},
		Body: `function kGt(a, b) { return kCmp(a, b) > 0; }`,
	},
	"kGte": {
		Deps: []string{"kCmp"},
		Body: `function kGte(a, b) { return kCmp(a, b) >= 0; }`,
	},
	"kNow": {
		Body: `function kNow() { return new Date(); }`,
	},
	"kToday": {
		Body: `function kToday() { var d = new Date(); d.setHours(0, 0, 0, 0); return d; }`,
	},
	"kStartOf": {
		Body: `function kStartOf(d, unit) {
  var r = new Date(d.getTime());
  r.setHours(0, 0, 0, 0);
  if (unit === 'day') { return r; }
  if (unit === 'week') { r.setDate(r.getDate() - (r.getDay() + 6) % 7); return r; }
  if (unit === 'month') { r.setDate(1); return r; }
  if (unit === 'quarter') { r.setMonth(Math.floor(r.getMonth() / 3) * 3, 1); return r; }
  r.setMonth(0, 1);
  return r;
}`,
	},
	"kEndOf": {
		Deps: []string{"kStartOf"},
		Body: `function kEndOf(d, unit) {
  var r = kStartOf(d, unit);
  if (unit === 'day') { r.setHours(23, 59, 59, 999); return r; }
  if (unit === 'week') { r.setDate(r.getDate() + 6); return r; }
  if (unit === 'month') { r.setMonth(r.getMonth() + 1, 0); return r; }
  if (unit === 'quarter') { r.setMonth(r.getMonth() + 3, 0); return r; }
  r.setMonth(11, 31);
  return r;
}`,
	},
}
