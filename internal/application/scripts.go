package application

// Page scripts. Each is a single expression; promises are awaited by the
// page adapter and the JSON result decoded into the caller's value.

const focusableSelector = `button, a[href], input, select, textarea, [tabindex]:not([tabindex="-1"])`

const bootstrapJS = `<script>
(function () {
  try {
    var src = document.getElementById('component-source').textContent;
    var out = Babel.transform(src, {
      filename: 'component.tsx',
      presets: [['typescript', { isTSX: true, allExtensions: true }], 'react']
    }).code;
    (0, eval)(out);
    ReactDOM.createRoot(document.getElementById('root'))
      .render(React.createElement(window.__uikraftComponent, %s));
  } catch (e) {
    window.__uikraftError = String((e && e.stack) || e);
  }
})();
</script>
`

const loadScriptJS = `new Promise(function (resolve, reject) {
  var s = document.createElement('script');
  s.src = %s;
  s.onload = function () { resolve(true); };
  s.onerror = function () { reject(new Error('failed to load ' + s.src)); };
  document.head.appendChild(s);
})`

const renderErrorJS = `window.__uikraftError || ''`

const axeRunJS = `axe.run(document.querySelector('#root'), { resultTypes: ['violations'] }).then(function (r) {
  return r.violations.map(function (v) {
    return {
      id: v.id,
      impact: v.impact || 'minor',
      description: v.description,
      help: v.help,
      helpUrl: v.helpUrl,
      tags: v.tags,
      nodes: v.nodes.map(function (n) {
        return { html: n.html, target: n.target.map(String), impact: n.impact || '' };
      })
    };
  });
})`

// describeFn labels an element as tag#id "text" for reports.
const describeFn = `function __describe(el) {
  if (!el || el === document.body || el === document.documentElement) return '';
  var d = el.tagName.toLowerCase();
  if (el.id) d += '#' + el.id;
  var label = el.getAttribute('aria-label') || (el.textContent || '').trim();
  if (label) d += ' "' + label.slice(0, 40) + '"';
  return d;
}`

const tagFocusableJS = `(function () {
  ` + describeFn + `
  var els = document.querySelectorAll('` + focusableSelector + `');
  return Array.prototype.map.call(els, function (el, i) {
    el.setAttribute('data-uikraft-id', String(i));
    return { id: String(i), element: __describe(el) };
  });
})()`

const activeElementJS = `(function () {
  ` + describeFn + `
  var el = document.activeElement;
  if (!el || el === document.body) return { id: '', element: '' };
  return { id: el.getAttribute('data-uikraft-id') || '', element: __describe(el) };
})()`

const buttonLikeJS = `(function () {
  var el = document.activeElement;
  if (!el || el === document.body) return false;
  if (el.tagName === 'BUTTON') return true;
  if (el.getAttribute('role') === 'button') return true;
  return el.tagName === 'INPUT' && ['button', 'submit', 'reset'].indexOf(el.type) >= 0;
})()`

// installActivationJS reports clicks through the host binding named %s.
// Link navigation is suppressed so the document survives activation.
const installActivationJS = `(function () {
  var sel = 'button, a, [role="button"], [role="link"], input[type="button"], input[type="submit"]';
  document.querySelectorAll(sel).forEach(function (el) {
    el.addEventListener('click', function (e) {
      if (el.tagName === 'A') e.preventDefault();
      window[%q](el.tagName.toLowerCase());
    });
  });
  return true;
})()`

const dialogStateJS = `(function () {
  var el = document.querySelector('[role="dialog"], [role="alertdialog"], [aria-modal="true"]');
  if (!el) return { present: false, visible: false };
  el.setAttribute('data-uikraft-dialog', '1');
  var cs = getComputedStyle(el);
  var visible = el.getClientRects().length > 0 && cs.visibility !== 'hidden' &&
    cs.display !== 'none' && el.getAttribute('aria-hidden') !== 'true';
  return { present: true, visible: visible };
})()`

const dialogClosedJS = `(function () {
  var el = document.querySelector('[data-uikraft-dialog]');
  if (!el || !document.contains(el)) return true;
  return el.getAttribute('aria-hidden') === 'true';
})()`

// effectiveBgFn walks up to the first non-transparent background.
const effectiveBgFn = `function __bg(el) {
  while (el && el.nodeType === 1) {
    var bg = getComputedStyle(el).backgroundColor;
    if (bg && bg !== 'transparent' && !/rgba\(.*,\s*0\)$/.test(bg)) return bg;
    el = el.parentElement;
  }
  return 'rgb(255, 255, 255)';
}`

const focusStyleJS = `(function () {
  ` + effectiveBgFn + `
  var el = document.activeElement;
  if (!el || el === document.body) return null;
  var cs = getComputedStyle(el);
  return {
    outlineWidth: cs.outlineWidth,
    outlineStyle: cs.outlineStyle,
    outlineColor: cs.outlineColor,
    boxShadow: cs.boxShadow,
    borderWidth: cs.borderTopWidth,
    borderColor: cs.borderTopColor,
    backgroundColor: cs.backgroundColor,
    color: cs.color,
    parentBackground: __bg(el.parentElement)
  };
})()`

const contrastCandidateSelector = `#root [data-uikraft-c]`

const tagContrastJS = `(function () {
  var n = 0;
  document.querySelectorAll('#root *').forEach(function (el) {
    var ownText = Array.prototype.some.call(el.childNodes, function (c) {
      return c.nodeType === 3 && c.textContent.trim() !== '';
    });
    var control = /^(BUTTON|INPUT|SELECT|TEXTAREA|A)$/.test(el.tagName);
    if (ownText || control) el.setAttribute('data-uikraft-c', String(n++));
  });
  return n;
})()`

const contrastSampleJS = `(function () {
  ` + describeFn + `
  ` + effectiveBgFn + `
  return Array.prototype.map.call(document.querySelectorAll('` + contrastCandidateSelector + `'), function (el) {
    var cs = getComputedStyle(el);
    var ownText = Array.prototype.some.call(el.childNodes, function (c) {
      return c.nodeType === 3 && c.textContent.trim() !== '';
    });
    return {
      key: el.getAttribute('data-uikraft-c'),
      element: __describe(el),
      text: ownText,
      color: cs.color,
      background: __bg(el),
      border: cs.borderTopColor,
      borderWidth: cs.borderTopWidth,
      ownBackground: cs.backgroundColor,
      parentBackground: __bg(el.parentElement),
      fontSize: parseFloat(cs.fontSize) || 16,
      fontWeight: parseInt(cs.fontWeight, 10) || 400,
      disabled: el.matches(':disabled') || el.getAttribute('aria-disabled') === 'true'
    };
  });
})()`

const computedStylesJS = `(function () {
  var props = ['color', 'background-color', 'border-top-color', 'font-family', 'font-size', 'font-weight',
    'padding-top', 'padding-right', 'padding-bottom', 'padding-left',
    'margin-top', 'margin-right', 'margin-bottom', 'margin-left', 'row-gap', 'column-gap'];
  var seen = {};
  var out = [];
  document.querySelectorAll('#root *').forEach(function (el) {
    var cs = getComputedStyle(el);
    props.forEach(function (p) {
      var v = cs.getPropertyValue(p).trim();
      if (!v || v === 'normal' || v === 'auto') return;
      if (p === 'border-top-color' && cs.borderTopWidth === '0px') return;
      var name = p === 'border-top-color' ? 'border-color' : p;
      var key = name + '|' + v;
      if (seen[key]) return;
      seen[key] = true;
      out.push({ property: name, value: v });
    });
  });
  return out;
})()`
