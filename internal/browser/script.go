package browser

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/labels"
)

// bindingName is the page function that relays events to the host.
const bindingName = "autofillRelay"

// BoxAttr carries the layout key the snapshot assigns to boxed elements.
const BoxAttr = "data-autofill-box"

// scriptTemplate installs window.__autofill once per document. The
// placeholders are replaced with JSON string literals.
const scriptTemplate = `(() => {
  if (window.__autofill) return;
  const ID = __ID_ATTR__, HIDDEN = __HIDDEN_ATTR__, BOX = __BOX_ATTR__;
  const CONTROLS = 'input, textarea, select';
  const BOXED = __BOX_SELECTOR__;
  const TRIGGER = __TRIGGER_CLASS__, TRIGGER_FOR = __TRIGGER_FOR__;
  let next = 0;

  const send = (type, id) => {
    try { window[__BINDING__](JSON.stringify({type: type, id: id || ''})); } catch (e) {}
  };

  const assign = () => {
    let added = 0;
    document.querySelectorAll('[' + ID + ']').forEach(el => {
      const n = parseInt((el.getAttribute(ID) || '').replace(/^af-/, ''), 10);
      if (n > next) next = n;
    });
    document.querySelectorAll(CONTROLS).forEach(el => {
      if (!el.hasAttribute(ID)) {
        el.setAttribute(ID, 'af-' + (++next));
        added++;
      }
    });
    return added;
  };

  const snapshot = () => {
    assign();
    const root = document.documentElement;
    const clone = root.cloneNode(true);

    const live = root.querySelectorAll(CONTROLS);
    const copies = clone.querySelectorAll(CONTROLS);
    live.forEach((el, i) => {
      const c = copies[i];
      if (!c) return;
      if (el.type !== 'hidden' && el.offsetParent === null) c.setAttribute(HIDDEN, '');
      if (el.tagName === 'TEXTAREA') {
        c.textContent = el.value;
      } else if (el.tagName === 'SELECT') {
        Array.from(c.options).forEach((o, j) => {
          if (el.options[j] && el.options[j].selected) o.setAttribute('selected', '');
          else o.removeAttribute('selected');
        });
      } else if (el.type === 'checkbox' || el.type === 'radio') {
        if (el.checked) c.setAttribute('checked', ''); else c.removeAttribute('checked');
      } else {
        c.setAttribute('value', el.value);
      }
    });

    const boxes = {};
    const liveBoxed = root.querySelectorAll(CONTROLS + ', ' + BOXED);
    const copyBoxed = clone.querySelectorAll(CONTROLS + ', ' + BOXED);
    liveBoxed.forEach((el, i) => {
      const c = copyBoxed[i];
      if (!c) return;
      const r = el.getBoundingClientRect();
      const key = 'b-' + i;
      c.setAttribute(BOX, key);
      boxes[key] = {left: r.left, top: r.top, right: r.right, bottom: r.bottom};
    });

    let framed = false;
    try { framed = window.top !== window; } catch (e) { framed = true; }
    return {html: clone.outerHTML, url: location.href, referrer: document.referrer, framed: framed, boxes: boxes};
  };

  const apply = (f) => {
    const el = document.querySelector('[' + ID + '="' + CSS.escape(f.element_id) + '"]');
    if (!el) return 'no element with ' + ID + '="' + f.element_id + '"';
    const fire = (...types) => types.forEach(t => el.dispatchEvent(new Event(t, {bubbles: true})));

    switch (f.kind) {
    case 'value': {
      const proto = el.tagName === 'TEXTAREA' ? HTMLTextAreaElement.prototype : HTMLInputElement.prototype;
      const desc = Object.getOwnPropertyDescriptor(proto, 'value');
      if (desc && desc.set) desc.set.call(el, f.value || ''); else el.value = f.value || '';
      fire('input', 'change', 'blur');
      return '';
    }
    case 'select': {
      const opt = Array.from(el.options).find(o => o.value === f.value);
      if (!opt) return 'select ' + f.element_id + ' has no option "' + f.value + '"';
      el.value = opt.value;
      fire('change');
      return '';
    }
    case 'check':
      el.checked = !!f.checked;
      fire('change');
      return '';
    case 'trigger': {
      if (document.querySelector('.' + TRIGGER + '[' + TRIGGER_FOR + '="' + CSS.escape(f.element_id) + '"]')) return '';
      const btn = document.createElement('span');
      btn.className = TRIGGER;
      btn.setAttribute(TRIGGER_FOR, f.element_id);
      btn.title = 'Click to generate with AI';
      btn.textContent = '✨';
      btn.style.cssText = 'cursor:pointer;margin-left:4px;user-select:none;';
      el.insertAdjacentElement('afterend', btn);
      return '';
    }
    case 'clear-trigger':
      document.querySelectorAll('.' + TRIGGER).forEach(b => {
        if (b.getAttribute(TRIGGER_FOR) === f.element_id) b.remove();
      });
      return '';
    }
    return 'unknown fill kind "' + f.kind + '"';
  };

  const relayEdit = (e) => {
    const t = e.target;
    if (e.isTrusted && t && t.hasAttribute && t.hasAttribute(ID)) send('edit', t.getAttribute(ID));
  };
  document.addEventListener('input', relayEdit, true);
  document.addEventListener('change', relayEdit, true);
  document.addEventListener('click', (e) => {
    const t = e.target && e.target.closest ? e.target.closest('.' + TRIGGER) : null;
    if (!t) return;
    e.preventDefault();
    e.stopPropagation();
    send('trigger', t.getAttribute(TRIGGER_FOR));
  }, true);

  const observe = () => {
    new MutationObserver(() => { if (assign() > 0) send('mutation'); })
      .observe(document.documentElement, {childList: true, subtree: true});
    assign();
  };
  if (document.readyState === 'loading') document.addEventListener('DOMContentLoaded', observe);
  else observe();

  window.__autofill = {assign: assign, snapshot: snapshot, apply: apply};
})();`

// pageScript is scriptTemplate with its constants filled in.
var pageScript = strings.NewReplacer(
	"__ID_ATTR__", jsString(dom.IDAttr),
	"__HIDDEN_ATTR__", jsString(dom.HiddenAttr),
	"__BOX_ATTR__", jsString(BoxAttr),
	"__BOX_SELECTOR__", jsString(labels.ProximitySelector),
	"__TRIGGER_CLASS__", jsString(dom.TriggerClass),
	"__TRIGGER_FOR__", jsString(dom.TriggerForAttr),
	"__BINDING__", jsString(bindingName),
).Replace(scriptTemplate)

// snapshotExpr installs the script if a navigation dropped it, then
// snapshots the page.
var snapshotExpr = pageScript + "\nwindow.__autofill.snapshot();"

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// applyExpr returns the expression that performs f in the page.
func applyExpr(f dom.Fill) (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return pageScript + "\nwindow.__autofill.apply(" + string(b) + ");", nil
}
