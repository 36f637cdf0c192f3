// File: internal/scanner/script.go
package scanner

// fieldScanScript is the in-page extraction pass. It enumerates candidate
// controls, drops non-fillable and invisible ones, and resolves label, aria,
// description, legend, and nearby prompt text for each survivor. The %d verb
// caps how many raw controls the frame walk considers before any filtering,
// so a page stuffed with hidden inputs still bounds the scan.
//
// Everything textual is resolved here because only the page can walk its own
// DOM; scoring and classification stay on the Go side so they remain unit
// testable without a browser.
const fieldScanScript = `(() => {
  const MAX = %d;
  const out = [];

  const isVisible = (el) => {
    const style = window.getComputedStyle(el);
    if (style.display === 'none' || style.visibility === 'hidden') return false;
    const rect = el.getBoundingClientRect();
    return rect.width > 0 && rect.height > 0;
  };

  const textOf = (el) =>
    el && el.textContent ? el.textContent.trim().replace(/\s+/g, ' ') : '';

  const labelFor = (el) => {
    if (el.labels && el.labels.length > 0) return textOf(el.labels[0]);
    if (el.id) {
      const lab = document.querySelector('label[for="' + CSS.escape(el.id) + '"]');
      if (lab) return textOf(lab);
    }
    const wrap = el.closest('label');
    return wrap ? textOf(wrap) : '';
  };

  const byIds = (ids) => {
    if (!ids) return '';
    return ids
      .split(/\s+/)
      .map((id) => {
        const n = document.getElementById(id);
        return n ? textOf(n) : '';
      })
      .filter(Boolean)
      .join(' ');
  };

  const nearbyTexts = (el) => {
    const texts = [];
    const push = (t) => {
      if (t && texts.length < 8 && !texts.includes(t)) texts.push(t);
    };
    const container = el.closest(
      'fieldset, .form-group, .form-field, .field, .question, li, [role="group"]'
    );
    if (container) {
      for (const n of container.querySelectorAll(
        'legend, h1, h2, h3, h4, p, .hint, .description, .help-text'
      )) {
        push(textOf(n));
      }
    }
    let sib = el.previousElementSibling;
    let hops = 0;
    while (sib && hops < 4) {
      if (/^(H1|H2|H3|H4|H5|P|LABEL|SPAN|DIV|LEGEND)$/.test(sib.tagName)) {
        push(textOf(sib));
      }
      sib = sib.previousElementSibling;
      hops++;
    }
    return texts;
  };

  const controls = document.querySelectorAll(
    'input, textarea, select, [contenteditable="true"], [contenteditable=""], [role="textbox"]'
  );
  const limit = Math.min(controls.length, MAX);
  for (let i = 0; i < limit; i++) {
    const el = controls[i];
    const tag = el.tagName.toLowerCase();
    const type = (el.getAttribute('type') || '').toLowerCase();
    if (tag === 'input' && ['hidden', 'submit', 'button', 'image', 'reset'].includes(type)) {
      continue;
    }
    if (!isVisible(el)) continue;

    const fs = el.closest('fieldset');
    const legendEl = fs ? fs.querySelector('legend') : null;

    out.push({
      tag: tag,
      type: type,
      id: el.id || '',
      name: el.getAttribute('name') || '',
      required: el.required === true || el.getAttribute('aria-required') === 'true',
      label: labelFor(el),
      ariaName: el.getAttribute('aria-label') || byIds(el.getAttribute('aria-labelledby')),
      placeholder: el.getAttribute('placeholder') || '',
      describedBy: byIds(el.getAttribute('aria-describedby')),
      legend: textOf(legendEl),
      nearby: nearbyTexts(el),
      maxLength: parseInt(el.getAttribute('maxlength') || '0', 10) || 0,
      minLength: parseInt(el.getAttribute('minlength') || '0', 10) || 0,
      options:
        tag === 'select'
          ? Array.from(el.options).map((o) => o.label || o.text).filter(Boolean).slice(0, 50)
          : [],
      editable: el.isContentEditable === true || el.getAttribute('role') === 'textbox',
    });
  }
  return out;
})()`
